package deploy

import (
	"mime"

	errors "github.com/Laisky/errors/v2"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	mjson "github.com/tdewolff/minify/v2/json"
)

// minifier shrinks html, css, js and json parts before upload.
type minifier struct {
	m *minify.M
}

func newMinifier() *minifier {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.Add("text/html", &html.Minifier{
		KeepDocumentTags:    true,
		KeepDefaultAttrVals: true,
		KeepEndTags:         true,
	})
	m.AddFunc("application/javascript", js.Minify)
	m.AddFunc("text/javascript", js.Minify)
	m.AddFunc("application/json", mjson.Minify)

	return &minifier{m: m}
}

// Bytes minifies b when its media type is supported and returns b unchanged otherwise.
func (m *minifier) Bytes(mimeType string, b []byte) ([]byte, error) {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return b, nil
	}
	switch mediaType {
	case "text/css", "text/html", "application/javascript", "text/javascript", "application/json":
	default:
		return b, nil
	}

	out, err := m.m.Bytes(mediaType, b)
	if err != nil {
		return nil, errors.Wrapf(err, "minify %s", mediaType)
	}
	return out, nil
}
