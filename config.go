package starterblog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/eringen/starterblog/views"
)

// EnvPrefix prefixes environment overrides, e.g. STARTERBLOG_OUTPUTDIR.
const EnvPrefix = "STARTERBLOG"

// SiteConfig holds all configuration for a site.
type SiteConfig struct {
	SiteMetadata MetadataConfig `mapstructure:"siteMetadata"`
	PathPrefix   string         `mapstructure:"pathPrefix"` // e.g. "/blog"; empty serves from "/"
	Language     string         `mapstructure:"language"`   // document lang (default "fr")
	Bio          BioConfig      `mapstructure:"bio"`

	Avatar     string `mapstructure:"avatar"`     // source image for the bio card
	ContentDir string `mapstructure:"contentDir"` // markdown posts (default "content/blog")
	StaticDir  string `mapstructure:"staticDir"`  // copied verbatim (default "static")
	OutputDir  string `mapstructure:"outputDir"`  // build output (default "public")

	Addr     string        `mapstructure:"addr"`     // preview listen address (default ":8000")
	CacheTTL time.Duration `mapstructure:"cacheTTL"` // preview post cache TTL (default 1m)
}

// MetadataConfig is the siteMetadata block.
type MetadataConfig struct {
	Title       string `mapstructure:"title"`
	Author      string `mapstructure:"author"`
	Description string `mapstructure:"description"`
	SiteURL     string `mapstructure:"siteUrl"`
	Social      struct {
		Twitter string `mapstructure:"twitter"`
	} `mapstructure:"social"`
}

// BioConfig is the author card copy.
type BioConfig struct {
	Revision    string `mapstructure:"revision"` // "short" or "long" (default "long")
	Summary     string `mapstructure:"summary"`
	Description string `mapstructure:"description"`
	LinkText    string `mapstructure:"linkText"`
}

const (
	defaultBioSummary  = "Pas grand chose d'utile, mais beaucoup de trucs cools."
	defaultBioLinkText = "Sur Twitter"
)

func (c *SiteConfig) setDefaults() {
	if c.Language == "" {
		c.Language = "fr"
	}
	if c.Bio.Revision == "" {
		c.Bio.Revision = string(views.BioLong)
	}
	if c.Bio.Summary == "" {
		c.Bio.Summary = defaultBioSummary
	}
	if c.Bio.LinkText == "" {
		c.Bio.LinkText = defaultBioLinkText
	}
	if c.ContentDir == "" {
		c.ContentDir = "content/blog"
	}
	if c.StaticDir == "" {
		c.StaticDir = "static"
	}
	if c.OutputDir == "" {
		c.OutputDir = "public"
	}
	if c.Addr == "" {
		c.Addr = ":8000"
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = time.Minute
	}
	c.PathPrefix = normalizePrefix(c.PathPrefix)
	c.SiteMetadata.SiteURL = strings.TrimSuffix(c.SiteMetadata.SiteURL, "/")
}

// normalizePrefix turns "blog/", "/blog" and "/blog/" into "/blog", and "/"
// into "".
func normalizePrefix(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

// Validate reports missing required fields.
func (c SiteConfig) Validate() error {
	var errs []error
	if c.SiteMetadata.Title == "" {
		errs = append(errs, errors.New("siteMetadata.title is required"))
	}
	if c.SiteMetadata.Author == "" {
		errs = append(errs, errors.New("siteMetadata.author is required"))
	}
	switch views.BioRevision(c.Bio.Revision) {
	case views.BioShort, views.BioLong:
	default:
		errs = append(errs, fmt.Errorf("bio.revision must be %q or %q, got %q", views.BioShort, views.BioLong, c.Bio.Revision))
	}
	if _, err := language.Parse(c.Language); err != nil {
		errs = append(errs, fmt.Errorf("language %q: %w", c.Language, err))
	}
	return errors.Join(errs...)
}

// RootPath is the home route: the path prefix followed by "/".
func (c SiteConfig) RootPath() string {
	return c.PathPrefix + "/"
}

// LanguageTag returns the configured language, or und when it does not parse.
func (c SiteConfig) LanguageTag() language.Tag {
	tag, err := language.Parse(c.Language)
	if err != nil {
		return language.Und
	}
	return tag
}

// Metadata converts the siteMetadata block into the view type.
func (c SiteConfig) Metadata() views.SiteMetadata {
	m := c.SiteMetadata
	return views.SiteMetadata{
		Title:       m.Title,
		Author:      m.Author,
		Description: m.Description,
		SiteURL:     m.SiteURL,
		Social:      views.Social{Twitter: m.Social.Twitter},
	}
}

// BioCopy converts the bio block into the view type.
func (c SiteConfig) BioCopy() views.BioCopy {
	return views.BioCopy{
		Revision:    views.BioRevision(c.Bio.Revision),
		Summary:     c.Bio.Summary,
		Description: c.Bio.Description,
		LinkText:    c.Bio.LinkText,
	}
}

// LoadConfig reads path (or ./config.yaml when path is empty), applies
// STARTERBLOG_* environment overrides and defaults, and validates the result.
func LoadConfig(path string, log *zap.Logger) (SiteConfig, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return SiteConfig{}, fmt.Errorf("read config: %w", err)
		}
		log.Info("no config file found, using defaults and environment")
	} else {
		log.Debug("using config file", zap.String("path", v.ConfigFileUsed()))
	}

	var cfg SiteConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return SiteConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// bindEnvKeys registers every key so AutomaticEnv overrides apply even when
// the key is absent from the file; Unmarshal only sees keys viper knows.
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"siteMetadata.title", "siteMetadata.author", "siteMetadata.description",
		"siteMetadata.siteUrl", "siteMetadata.social.twitter",
		"pathPrefix", "language",
		"bio.revision", "bio.summary", "bio.description", "bio.linkText",
		"avatar", "contentDir", "staticDir", "outputDir", "addr", "cacheTTL",
	} {
		_ = v.BindEnv(key)
	}
}
