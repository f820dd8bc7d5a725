package site

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ziadkadry99/glossary/internal/glossary"
	"github.com/ziadkadry99/glossary/internal/images"
	"github.com/ziadkadry99/glossary/internal/progress"
	"github.com/ziadkadry99/glossary/internal/search"
	"github.com/ziadkadry99/glossary/internal/view"
)

// imagesDir is where card images live inside the generated site.
const imagesDir = "images"

// DocumentLoader provides the glossary document.
type DocumentLoader interface {
	Load(ctx context.Context) (*glossary.Document, error)
}

// SiteGenerator converts the glossary into a static HTML site.
type SiteGenerator struct {
	Loader         DocumentLoader
	OutputDir      string
	SiteTitle      string
	DefaultSubject string

	// ImageDir is a local folder with one sub-folder per subject. It is
	// copied into the site. ImageBaseURL serves images remotely instead.
	ImageDir     string
	ImageBaseURL string
	ImageExt     string
	Placeholder  string

	Search     search.Options
	DebounceMS int
	Reporter   progress.Reporter
}

// NewSiteGenerator creates a SiteGenerator with default search settings.
func NewSiteGenerator(loader DocumentLoader, outputDir, siteTitle string) *SiteGenerator {
	return &SiteGenerator{
		Loader:    loader,
		OutputDir: outputDir,
		SiteTitle: siteTitle,
		Reporter:  progress.Nop{},
	}
}

// Generate builds the full static site. Returns the number of pages
// generated. When the document cannot be loaded, an index page with the
// load-error placeholder is still written and the LoadError is returned.
func (g *SiteGenerator) Generate(ctx context.Context) (int, error) {
	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return 0, err
	}
	if err := g.writeAssets(); err != nil {
		return 0, fmt.Errorf("writing assets: %w", err)
	}

	doc, loadErr := g.Loader.Load(ctx)
	if loadErr != nil {
		page := view.NewPage(g.SiteTitle)
		page.RenderLoadError()
		if err := g.writePage("index.html", page, &glossary.Document{}); err != nil {
			return 0, err
		}
		return 1, loadErr
	}

	if err := WriteSearchIndex(BuildSearchIndex(doc), filepath.Join(g.OutputDir, "search-index.json")); err != nil {
		return 0, fmt.Errorf("writing search index: %w", err)
	}

	resolver, err := g.resolver()
	if err != nil {
		return 0, err
	}
	reporter := g.Reporter
	if reporter == nil {
		reporter = progress.Nop{}
	}
	reporter.Start(len(doc.Subjects) + 1)
	defer reporter.Finish()

	// Probe every image up front so pages ship with their final sources.
	for _, s := range doc.Subjects {
		for _, grp := range s.Groups {
			for _, c := range grp.Cards {
				if resolver.Resolve(ctx, s.ID, c) == resolver.Placeholder() {
					reporter.Warn(fmt.Sprintf("%s: image not found, using placeholder", resolver.Primary(s.ID, c)))
				}
			}
		}
	}

	for i, s := range doc.Subjects {
		name := view.SubjectHref(s.ID)
		page := view.NewPage(g.SiteTitle)
		if err := page.Render(doc, s.ID, resolver); err != nil {
			return i, fmt.Errorf("rendering %s: %w", s.ID, err)
		}
		if err := g.writePage(name, page, doc); err != nil {
			return i, fmt.Errorf("writing %s: %w", name, err)
		}
		reporter.Update(i+1, name)
	}

	if err := g.writeIndex(doc, resolver); err != nil {
		return len(doc.Subjects), err
	}
	reporter.Update(len(doc.Subjects)+1, "index.html")

	return len(doc.Subjects) + 1, nil
}

// writeIndex renders the default subject as the landing page.
func (g *SiteGenerator) writeIndex(doc *glossary.Document, resolver *images.Resolver) error {
	page := view.NewPage(g.SiteTitle)
	id := g.DefaultSubject
	if id == "" {
		if s := doc.Default(); s != nil {
			id = s.ID
		}
	}

	if id == "" {
		page.SetPlaceholder("empty", view.EmptyMessage)
	} else if err := page.Render(doc, id, resolver); err != nil {
		log.Printf("default subject %q: %v", id, err)
	}
	return g.writePage("index.html", page, doc)
}

func (g *SiteGenerator) resolver() (*images.Resolver, error) {
	switch {
	case g.ImageBaseURL != "":
		return images.NewResolver(g.ImageBaseURL, g.ImageExt, g.placeholder(), images.HTTPProber{}), nil
	case g.ImageDir != "":
		if err := copyDir(g.ImageDir, filepath.Join(g.OutputDir, imagesDir)); err != nil {
			return nil, fmt.Errorf("copying images: %w", err)
		}
		prober := images.FileProber{Root: filepath.Join(g.OutputDir, imagesDir), URLPrefix: imagesDir}
		return images.NewResolver(imagesDir, g.ImageExt, g.placeholder(), prober), nil
	default:
		return images.NewResolver(imagesDir, g.ImageExt, g.placeholder(), placeholderOnly{}), nil
	}
}

func (g *SiteGenerator) placeholder() string {
	if g.Placeholder != "" {
		return g.Placeholder
	}
	return images.DefaultPlaceholder
}

// placeholderOnly confirms no image, for sites built without images.
type placeholderOnly struct{}

func (placeholderOnly) Probe(context.Context, string) (string, bool) { return "", false }

func (g *SiteGenerator) writePage(name string, page *view.Page, doc *glossary.Document) error {
	f, err := os.Create(filepath.Join(g.OutputDir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	return RenderShell(f, ShellData{
		Title:           page.Title(),
		MetaDescription: page.MetaDescription(),
		SiteTitle:       g.SiteTitle,
		Nav:             template.HTML(view.HTML(view.RenderNav(doc, page.SubjectID(), view.SubjectHref))),
		Content:         template.HTML(view.HTML(page.Snapshot())),
		SearchIndex:     "search-index.json",
		Search:          g.searchSettings(),
	})
}

func (g *SiteGenerator) searchSettings() SearchSettings {
	return SearchSettings{
		MinQuery:   withDefault(g.Search.MinQueryLength, search.DefaultMinQueryLength),
		MaxResults: withDefault(g.Search.MaxResults, search.DefaultMaxResults),
		DebounceMS: withDefault(g.DebounceMS, int(search.DefaultDebounce.Milliseconds())),
	}
}

func withDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// writeAssets writes the stylesheet, the script and the placeholder image.
func (g *SiteGenerator) writeAssets() error {
	if err := os.WriteFile(filepath.Join(g.OutputDir, "style.css"), []byte(StyleSheet), 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "script.js"), []byte(Script), 0o644); err != nil {
		return err
	}

	// Only the built-in placeholder is written; a custom one is expected to
	// come with the image folder.
	if g.Placeholder != "" && g.Placeholder != images.DefaultPlaceholder {
		return nil
	}
	dst := filepath.Join(g.OutputDir, filepath.FromSlash(images.DefaultPlaceholder))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, []byte(PlaceholderSVG), 0o644)
}

// copyDir copies a directory tree. A missing source is not an error: cards
// then fall back to the placeholder.
func copyDir(src, dst string) error {
	if _, err := os.Stat(src); os.IsNotExist(err) {
		log.Printf("image folder %s not found, using placeholders", src)
		return nil
	}
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") && rel != "." {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
