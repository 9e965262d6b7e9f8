package core

import (
	"context"
	"fmt"
)

// Defaults for a section added in the editor.
const (
	DefaultSectionTitle   = "New Section"
	DefaultSectionContent = "Add your content here..."
)

// ListSections returns the caller's sections ordered by position.
func (s *Service) ListSections(ctx context.Context) ([]ContentSection, error) {
	c, err := s.EnsureCompany(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.ListSections(ctx, c.ID, false)
}

// AddSection appends a visible custom section with placeholder text.
func (s *Service) AddSection(ctx context.Context) (ContentSection, error) {
	c, err := s.EnsureCompany(ctx)
	if err != nil {
		return ContentSection{}, err
	}

	existing, err := s.store.ListSections(ctx, c.ID, false)
	if err != nil {
		return ContentSection{}, fmt.Errorf("list sections: %w", err)
	}

	return s.store.CreateSection(ctx, ContentSection{
		CompanyID: c.ID,
		Type:      SectionCustom,
		Title:     DefaultSectionTitle,
		Content:   DefaultSectionContent,
		Position:  len(existing),
		IsVisible: true,
	})
}

// UpdateSection applies patch to one of the caller's sections. Position
// is ignored; use MoveSection to reorder.
func (s *Service) UpdateSection(ctx context.Context, id string, patch SectionPatch) (ContentSection, error) {
	if _, err := s.ownedSection(ctx, id); err != nil {
		return ContentSection{}, err
	}
	patch.Position = nil
	if err := s.validate(patch); err != nil {
		return ContentSection{}, err
	}
	return s.store.UpdateSection(ctx, id, patch)
}

// DeleteSection removes a section and closes the gap it leaves in the
// ordering.
func (s *Service) DeleteSection(ctx context.Context, id string) error {
	sec, err := s.ownedSection(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteSection(ctx, id); err != nil {
		return fmt.Errorf("delete section: %w", err)
	}

	rest, err := s.store.ListSections(ctx, sec.CompanyID, false)
	if err != nil {
		return fmt.Errorf("list sections: %w", err)
	}
	_, err = s.savePositions(ctx, rest, Densify(rest))
	return err
}

// MoveSection swaps a section with its neighbour and returns the new
// ordering. Moving past either end leaves the order as it was.
func (s *Service) MoveSection(ctx context.Context, id string, dir MoveDirection) ([]ContentSection, error) {
	if dir != MoveUp && dir != MoveDown {
		return nil, newError(KindInvalidInput, "Direction must be up or down")
	}

	sec, err := s.ownedSection(ctx, id)
	if err != nil {
		return nil, err
	}

	current, err := s.store.ListSections(ctx, sec.CompanyID, false)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return s.savePositions(ctx, current, MoveSection(current, id, dir))
}

// savePositions writes the positions in next that differ from before.
func (s *Service) savePositions(ctx context.Context, before, next []ContentSection) ([]ContentSection, error) {
	old := make(map[string]int, len(before))
	for _, sec := range before {
		old[sec.ID] = sec.Position
	}

	for i := range next {
		pos := next[i].Position
		if p, ok := old[next[i].ID]; ok && p == pos {
			continue
		}
		if _, err := s.store.UpdateSection(ctx, next[i].ID, SectionPatch{Position: &pos}); err != nil {
			return nil, fmt.Errorf("reorder section %s: %w", next[i].ID, err)
		}
	}
	return next, nil
}

func (s *Service) ownedSection(ctx context.Context, id string) (ContentSection, error) {
	c, err := s.EnsureCompany(ctx)
	if err != nil {
		return ContentSection{}, err
	}
	sec, err := s.store.SectionByID(ctx, id)
	if err != nil {
		return ContentSection{}, notFound(err, "Section")
	}
	if sec.CompanyID != c.ID {
		return ContentSection{}, newError(KindForbidden, "Forbidden")
	}
	return sec, nil
}
