package export

import (
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/json"
	"github.com/tdewolff/minify/v2/xml"
)

const (
	mimeXML  = "text/xml"
	mimeJSON = "application/json"
)

var minifier = newMinifier()

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc(mimeXML, xml.Minify)
	m.AddFunc(mimeJSON, json.Minify)
	return m
}
