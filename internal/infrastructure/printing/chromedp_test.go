package printing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChromedpRenderer_Defaults(t *testing.T) {
	r, err := NewChromedpRenderer(nil)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, defaultChromeTimeout, r.config.DefaultTimeout)
	assert.NotNil(t, r.logger)
	assert.NotNil(t, r.allocCtx)
}

func TestBuildPrintParams_A4Portrait(t *testing.T) {
	r := &ChromedpRenderer{config: &ChromedpConfig{}}

	params := r.buildPrintParams(&RenderRequest{
		HTML:    "<html>test</html>",
		Margins: DefaultMargins(),
	})

	assert.InDelta(t, mmToInches(210), params.paperWidth, 0.01)
	assert.InDelta(t, mmToInches(297), params.paperHeight, 0.01)
	assert.False(t, params.landscape)
	assert.True(t, params.printBackground)
	assert.False(t, params.displayHeaderFooter)
}

func TestBuildPrintParams_Landscape(t *testing.T) {
	r := &ChromedpRenderer{config: &ChromedpConfig{}}

	params := r.buildPrintParams(&RenderRequest{HTML: "<html>test</html>", Landscape: true})

	assert.True(t, params.landscape)
}

func TestBuildPrintParams_WithMargins(t *testing.T) {
	r := &ChromedpRenderer{config: &ChromedpConfig{}}

	params := r.buildPrintParams(&RenderRequest{
		HTML:    "<html>test</html>",
		Margins: Margins{Top: 10, Right: 15, Bottom: 20, Left: 25},
	})

	assert.InDelta(t, mmToInches(10), params.marginTop, 0.001)
	assert.InDelta(t, mmToInches(15), params.marginRight, 0.001)
	assert.InDelta(t, mmToInches(20), params.marginBottom, 0.001)
	assert.InDelta(t, mmToInches(25), params.marginLeft, 0.001)
}

func TestBuildPrintParams_WithFooter(t *testing.T) {
	r := &ChromedpRenderer{config: &ChromedpConfig{}}

	params := r.buildPrintParams(&RenderRequest{
		HTML:       "<html>test</html>",
		Margins:    Margins{Bottom: 2},
		FooterHTML: "<div>Footer</div>",
	})

	assert.True(t, params.displayHeaderFooter)
	assert.Equal(t, "<span></span>", params.headerTemplate)
	assert.Equal(t, "<div>Footer</div>", params.footerTemplate)
	assert.GreaterOrEqual(t, params.marginBottom, mmToInches(10))
}

func TestBuildCompleteHTML(t *testing.T) {
	r := &ChromedpRenderer{config: &ChromedpConfig{}}

	t.Run("full documents are kept as-is", func(t *testing.T) {
		doc := "<!DOCTYPE html><html><head></head><body>test</body></html>"
		assert.Equal(t, doc, r.buildCompleteHTML(&RenderRequest{HTML: doc}))

		doc = "<html><body>test</body></html>"
		assert.Equal(t, doc, r.buildCompleteHTML(&RenderRequest{HTML: doc}))
	})

	t.Run("fragments are wrapped", func(t *testing.T) {
		result := r.buildCompleteHTML(&RenderRequest{
			HTML:  "<div>Hello World</div>",
			Title: "Q2 <Draft>",
		})

		assert.Contains(t, result, "<!DOCTYPE html>")
		assert.Contains(t, result, "<meta charset=\"UTF-8\">")
		assert.Contains(t, result, "<title>Q2 &lt;Draft&gt;</title>")
		assert.Contains(t, result, "<body><div>Hello World</div></body></html>")
	})
}

func TestRender_RejectsEmptyHTML(t *testing.T) {
	r := &ChromedpRenderer{config: &ChromedpConfig{}}

	_, err := r.Render(context.Background(), nil)
	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)

	_, err = r.Render(context.Background(), &RenderRequest{HTML: "   "})
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)
}

func TestEstimatePageCount(t *testing.T) {
	pdf := []byte("<< /Type /Pages /Count 2 >> << /Type /Page /Parent 1 0 R >> << /Type/Page /Parent 1 0 R >>")
	assert.Equal(t, 2, estimatePageCount(pdf))
	assert.Equal(t, 1, estimatePageCount([]byte("%PDF-1.4")))
}

func TestMmToInches(t *testing.T) {
	tests := []struct {
		mm       float64
		expected float64
	}{
		{0, 0},
		{25.4, 1.0},
		{210, 8.2677},
		{297, 11.6929},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.expected, mmToInches(tt.mm), 0.001)
	}
}

func TestRenderError(t *testing.T) {
	cause := errors.New("boom")
	err := NewRenderError(ErrCodeRenderFailed, "chromedp execution failed", cause)

	assert.Equal(t, "chromedp execution failed: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "generated PDF is empty", NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil).Error())
}

func TestChromedpRenderer_Close(t *testing.T) {
	r := &ChromedpRenderer{config: &ChromedpConfig{}}
	assert.NoError(t, r.Close())
}
