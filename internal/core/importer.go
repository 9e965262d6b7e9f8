package core

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/Jainshashank7125/whitecarrort-ats-branded/internal/metrics"
)

// ImportState is a stage of the import state machine.
type ImportState string

const (
	StateIdle       ImportState = "idle"
	StateUploading  ImportState = "uploading"
	StateParsing    ImportState = "parsing"
	StateValidating ImportState = "validating"
	StateSaving     ImportState = "saving"
	StateComplete   ImportState = "complete"
	StateError      ImportState = "error"
)

// DefaultMaxFileSize is the largest file an import accepts (5 MiB).
const DefaultMaxFileSize = 5 * 1024 * 1024

// sniffLen is how many leading bytes are inspected when the declared
// content type does not settle whether a file is CSV.
const sniffLen = 3072

// transitions lists the allowed moves. Everything else is refused.
var transitions = map[ImportState][]ImportState{
	StateIdle:       {StateUploading, StateError},
	StateUploading:  {StateParsing},
	StateParsing:    {StateValidating, StateError},
	StateValidating: {StateSaving, StateError},
	StateSaving:     {StateComplete, StateError},
	StateComplete:   {StateIdle},
	StateError:      {StateIdle},
}

// stageProgress is the progress percentage shown for each stage.
var stageProgress = map[ImportState]int{
	StateIdle:       0,
	StateUploading:  10,
	StateParsing:    30,
	StateValidating: 70,
	StateSaving:     90,
	StateComplete:   100,
}

// CanTransition reports whether the state machine allows from -> to.
func CanTransition(from, to ImportState) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ImportOptions tunes an Importer.
type ImportOptions struct {
	MaxFileSize int64
	Mode        ValidationMode
	Template    DescriptionTemplate
}

// DefaultImportOptions validates every row and writes short descriptions.
func DefaultImportOptions() ImportOptions {
	return ImportOptions{
		MaxFileSize: DefaultMaxFileSize,
		Mode:        ValidateAllRows,
		Template:    DescriptionShort,
	}
}

// FileInput is a file handed to an import.
type FileInput struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ImportSnapshot is a read-only view of an importer.
type ImportSnapshot struct {
	State     ImportState `json:"state"`
	Progress  int         `json:"progress"`
	FileName  string      `json:"file_name,omitempty"`
	Error     string      `json:"error,omitempty"`
	ErrorKind ErrorKind   `json:"error_kind,omitempty"`
	Details   []string    `json:"details,omitempty"`
	Total     int         `json:"total"`
	Preview   []Job       `json:"preview,omitempty"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Importer drives one CSV import for one company through
// idle -> uploading -> parsing -> validating -> saving -> complete.
//
// Parse, validation and persistence failures move it to the error state,
// which is left only through Retry. A completed batch stays in memory until
// Confirm inserts it or Discard drops it. All methods are safe for
// concurrent use; operations on one importer are serialized.
type Importer struct {
	mu        sync.Mutex
	companyID string
	opts      ImportOptions
	notifier  Notifier

	state     ImportState
	progress  int
	fileName  string
	err       *Error
	rows      []RawCsvRow
	batch     []Job
	updatedAt time.Time
}

// NewImporter returns an idle importer for companyID. A nil notifier
// discards notices.
func NewImporter(companyID string, opts ImportOptions, n Notifier) *Importer {
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	if opts.Mode == "" {
		opts.Mode = ValidateAllRows
	}
	if opts.Template == "" {
		opts.Template = DescriptionShort
	}
	if n == nil {
		n = Notifiers(nil)
	}
	return &Importer{
		companyID: companyID,
		opts:      opts,
		notifier:  n,
		state:     StateIdle,
		updatedAt: time.Now(),
	}
}

// Select starts an import of f. It runs every stage up to complete, or
// stops in the error state, and returns the failure, if any.
//
// The file is checked before parsing: it must look like CSV and be no
// larger than the configured maximum. A rejected file goes straight from
// idle to error.
func (im *Importer) Select(ctx context.Context, f FileInput) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	if im.state != StateIdle {
		return im.conflict("select")
	}
	im.fileName = f.Name

	body, rerr := checkFile(f, im.opts.MaxFileSize)
	if rerr != nil {
		return im.fail(ctx, rerr)
	}

	if err := im.advance(StateUploading, StateParsing); err != nil {
		return err
	}

	res, err := ParseRows(body)
	if err != nil {
		return im.fail(ctx, wrapError(KindParseFailure, "Failed to parse CSV: "+err.Error(), err))
	}
	if len(res.Errors) > 0 {
		return im.fail(ctx, &Error{
			Kind:    KindParseFailure,
			Message: "CSV parsing errors: " + strings.Join(res.Errors, ", "),
			Details: res.Errors,
		})
	}
	if len(res.Rows) == 0 {
		return im.fail(ctx, newError(KindParseFailure, "No data found in CSV file"))
	}
	im.rows = res.Rows

	if err := im.advance(StateValidating); err != nil {
		return err
	}
	if err := validateBatch(res, im.opts.Mode); err != nil {
		return im.fail(ctx, err)
	}

	if err := im.advance(StateSaving); err != nil {
		return err
	}
	im.batch = MapRows(im.rows, im.companyID, im.opts.Template)

	if err := im.advance(StateComplete); err != nil {
		return err
	}
	im.notifier.Notify(ctx, Notice{
		Title:       "CSV processed successfully!",
		Description: fmt.Sprintf("%d jobs ready to import", len(im.batch)),
		Level:       NoticeSuccess,
	})
	return nil
}

// Confirm inserts the completed batch with a single call to ins and
// returns to idle. If the insert fails the importer stays complete with
// the batch intact, so the caller may confirm again or discard.
func (im *Importer) Confirm(ctx context.Context, ins JobInserter) (int, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if im.state != StateComplete {
		return 0, im.conflict("confirm")
	}

	saved, err := ins.InsertJobs(ctx, im.batch)
	if err != nil {
		perr := wrapError(KindPersistenceFailure, "Failed to save jobs", err)
		metrics.ImportOutcome(string(KindPersistenceFailure))
		im.notifier.Notify(ctx, Notice{Title: "Import failed", Description: perr.Message, Level: NoticeError})
		return 0, perr
	}

	n := len(saved)
	metrics.ImportOutcome("confirmed")
	metrics.JobsImported(n)
	im.notifier.Notify(ctx, Notice{
		Title:       "Jobs imported",
		Description: fmt.Sprintf("Successfully imported %d jobs", n),
		Level:       NoticeSuccess,
	})
	return n, im.reset()
}

// Discard drops a completed batch and returns to idle.
func (im *Importer) Discard() error {
	im.mu.Lock()
	defer im.mu.Unlock()

	if im.state != StateComplete {
		return im.conflict("discard")
	}
	metrics.ImportOutcome("discarded")
	return im.reset()
}

// Retry leaves the error state, discarding everything parsed so far.
func (im *Importer) Retry() error {
	im.mu.Lock()
	defer im.mu.Unlock()

	if im.state != StateError {
		return im.conflict("retry")
	}
	return im.reset()
}

// State returns the current state.
func (im *Importer) State() ImportState {
	im.mu.Lock()
	defer im.mu.Unlock()
	return im.state
}

// Progress returns the progress percentage of the current state.
func (im *Importer) Progress() int {
	im.mu.Lock()
	defer im.mu.Unlock()
	return im.progress
}

// Err returns the failure that put the importer in the error state.
func (im *Importer) Err() error {
	im.mu.Lock()
	defer im.mu.Unlock()
	if im.err == nil {
		return nil
	}
	return im.err
}

// Rows returns the parsed rows of the current attempt.
func (im *Importer) Rows() []RawCsvRow {
	im.mu.Lock()
	defer im.mu.Unlock()
	return append([]RawCsvRow(nil), im.rows...)
}

// Batch returns the mapped jobs awaiting confirmation.
func (im *Importer) Batch() []Job {
	im.mu.Lock()
	defer im.mu.Unlock()
	return append([]Job(nil), im.batch...)
}

// Snapshot returns the importer's state with up to preview mapped jobs.
func (im *Importer) Snapshot(preview int) ImportSnapshot {
	im.mu.Lock()
	defer im.mu.Unlock()

	s := ImportSnapshot{
		State:     im.state,
		Progress:  im.progress,
		FileName:  im.fileName,
		Total:     len(im.batch),
		UpdatedAt: im.updatedAt,
	}
	if im.err != nil {
		s.Error = im.err.Message
		s.ErrorKind = im.err.Kind
		s.Details = im.err.Details
	}
	if preview > len(im.batch) {
		preview = len(im.batch)
	}
	if preview > 0 {
		s.Preview = append([]Job(nil), im.batch[:preview]...)
	}
	return s
}

// move advances the state machine by one step. Moves not listed in
// transitions leave the state unchanged and return ErrInvalidTransition.
// Callers hold im.mu.
func (im *Importer) move(to ImportState) error {
	if !CanTransition(im.state, to) {
		return wrapError(KindConflict,
			fmt.Sprintf("Cannot move an import from %s to %s", im.state, to), ErrInvalidTransition)
	}
	im.state = to
	if p, ok := stageProgress[to]; ok {
		im.progress = p
	}
	im.updatedAt = time.Now()
	metrics.ImportState(string(to))
	return nil
}

// advance makes each move in turn, stopping at the first refused one.
func (im *Importer) advance(states ...ImportState) error {
	for _, to := range states {
		if err := im.move(to); err != nil {
			return err
		}
	}
	return nil
}

// conflict reports an operation the current state does not allow.
func (im *Importer) conflict(op string) *Error {
	msg := fmt.Sprintf("Cannot %s an import that is %s", op, im.state)
	if op == "select" {
		msg = "An import is already in progress"
	}
	return wrapError(KindConflict, msg, ErrInvalidTransition)
}

func (im *Importer) fail(ctx context.Context, err *Error) error {
	if merr := im.move(StateError); merr != nil {
		return merr
	}
	im.err = err
	metrics.ImportOutcome(string(err.Kind))
	im.notifier.Notify(ctx, Notice{Title: "Import failed", Description: err.Message, Level: NoticeError})
	return err
}

func (im *Importer) reset() error {
	if err := im.move(StateIdle); err != nil {
		return err
	}
	im.err = nil
	im.rows = nil
	im.batch = nil
	im.fileName = ""
	return nil
}

// checkFile applies the pre-parse gate and returns the body to parse.
// The size limit holds for the bytes actually read, whatever f.Size says.
func checkFile(f FileInput, maxSize int64) (io.Reader, *Error) {
	src := f.Body
	if src == nil {
		src = strings.NewReader("")
	}
	body := bufio.NewReaderSize(src, sniffLen)

	if !declaredCSV(f) {
		head, _ := body.Peek(sniffLen)
		if len(head) == 0 || !mimetype.Detect(head).Is("text/csv") {
			return nil, newError(KindInputRejected, "Please select a valid CSV file")
		}
	}

	tooLarge := newError(KindInputRejected, fmt.Sprintf("File size must be less than %dMB", maxSize/(1024*1024)))
	if f.Size > maxSize {
		return nil, tooLarge
	}
	data, err := io.ReadAll(io.LimitReader(body, maxSize+1))
	if err != nil {
		return nil, wrapError(KindInputRejected, "Failed to read file", err)
	}
	if int64(len(data)) > maxSize {
		return nil, tooLarge
	}
	return bytes.NewReader(data), nil
}

// declaredCSV reports whether the name or declared type says CSV.
func declaredCSV(f FileInput) bool {
	if strings.Contains(strings.ToLower(f.ContentType), "csv") {
		return true
	}
	return strings.EqualFold(filepath.Ext(f.Name), ".csv")
}
