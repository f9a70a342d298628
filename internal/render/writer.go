package render

import (
	"context"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/audio-report/internal/domain"
	"github.com/nguyentantai21042004/audio-report/internal/logger"
)

// Writer renders reports into a directory and returns their public links.
type Writer struct {
	dir       string
	urlPrefix string
	logger    logger.Logger
	html      HTMLRenderer
	renderers map[string]Renderer
	mirror    Mirror
}

// Option configures a Writer.
type Option func(w *Writer)

// WithRenderer registers r for its format, replacing any default.
func WithRenderer(r Renderer) Option {
	return func(w *Writer) {
		w.renderers[r.Format()] = r
	}
}

// WithMirror copies every written artifact through m.
func WithMirror(m Mirror) Option {
	return func(w *Writer) {
		w.mirror = m
	}
}

// NewWriter creates a Writer for dir whose links start with urlPrefix.
func NewWriter(dir, urlPrefix string, l logger.Logger, opts ...Option) *Writer {
	w := &Writer{
		dir:       dir,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
		logger:    l,
		renderers: map[string]Renderer{
			domain.FormatHTML:     HTMLRenderer{},
			domain.FormatMarkdown: MarkdownRenderer{},
			domain.FormatText:     TextRenderer{},
			domain.FormatDocx:     DocxRenderer{},
		},
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Write renders the HTML preview and every format in formats. HTML is
// mandatory; a failing optional format is logged and left out of the links.
func (w *Writer) Write(ctx context.Context, r *Report, baseName string, formats []string) (*Output, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return nil, domain.NewStageError(domain.StageRender, domain.ErrRender, "create reports dir", err)
	}

	preview, err := w.html.Fragment(r)
	if err != nil {
		return nil, domain.NewStageError(domain.StageRender, domain.ErrRender, "render preview", err)
	}

	out := &Output{Preview: preview, Links: map[string]string{}}
	for _, format := range formats {
		renderer, ok := w.renderers[format]
		if !ok {
			w.logger.Warn(ctx, "No renderer for format %q, skipping", format)
			continue
		}

		fileName := baseName + "." + format
		target := filepath.Join(w.dir, fileName)
		if err := renderer.Render(r, target); err != nil {
			if format == domain.FormatHTML {
				return nil, domain.NewStageError(domain.StageRender, domain.ErrRender, "write html report", err)
			}
			w.logger.Error(ctx, "Failed to render %s report %s: %v", format, fileName, err)
			_ = os.Remove(target)
			continue
		}

		out.Links[format] = w.urlPrefix + "/" + fileName
		w.mirrorFile(ctx, target, fileName)
	}

	if _, ok := out.Links[domain.FormatHTML]; !ok {
		return nil, domain.NewStageError(domain.StageRender, domain.ErrRender, "html report missing", nil)
	}
	return out, nil
}

func (w *Writer) mirrorFile(ctx context.Context, localPath, fileName string) {
	if w.mirror == nil {
		return
	}
	contentType := mime.TypeByExtension(path.Ext(fileName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := w.mirror.Put(ctx, localPath, fileName, contentType); err != nil {
		w.logger.Warn(ctx, "Failed to mirror %s: %v", fileName, err)
		return
	}
	w.logger.Debug(ctx, "Mirrored %s", fileName)
}
