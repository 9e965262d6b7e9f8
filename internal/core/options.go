package core

import "github.com/Jainshashank7125/whitecarrort-ats-branded/internal/config"

// OptionsFromConfig maps the application configuration onto service
// options. n receives every user notice; it may be nil.
func OptionsFromConfig(cfg *config.Config, n Notifier) Options {
	return Options{
		Import: ImportOptions{
			MaxFileSize: cfg.Import.MaxFileSize,
			Mode:        ValidationMode(cfg.Import.ValidationMode),
			Template:    DescriptionTemplate(cfg.Import.DescriptionTemplate),
		},
		MaxConcurrentImports: cfg.Import.MaxConcurrent,
		ImportWait:           cfg.Import.MaxWait,
		SessionTTL:           cfg.Import.SessionTTL,
		PreviewSecret:        cfg.Auth.PreviewSecret,
		PreviewTTL:           cfg.Auth.PreviewTTL,
		Notifier:             n,
	}
}
