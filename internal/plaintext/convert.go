package plaintext

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"golang.org/x/net/html"
)

// Extractor turns HTML into text. Links keep their text and lose the target,
// images are dropped, and paragraphs are never wrapped to a fixed width.
type Extractor struct {
	conv *converter.Converter
}

func New() *Extractor {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
		// Output is read as text, so Markdown characters stay literal.
		converter.WithEscapeMode(converter.EscapeModeDisabled),
	)

	conv.Register.RendererFor("a", converter.TagTypeInline, renderLinkText, converter.PriorityEarly)
	conv.Register.TagType("img", converter.TagTypeRemove, converter.PriorityEarly)
	conv.Register.TagType("picture", converter.TagTypeRemove, converter.PriorityEarly)

	return &Extractor{conv: conv}
}

func (e *Extractor) FromHTML(input string) (string, error) {
	text, err := e.conv.ConvertString(input)
	if err != nil {
		return "", err
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.TrimSpace(text), nil
}

func renderLinkText(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	ctx.RenderChildNodes(ctx, w, n)
	return converter.RenderSuccess
}
