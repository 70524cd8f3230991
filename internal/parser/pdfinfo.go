package parser

import (
	"bytes"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rotisserie/eris"
)

// PageCount validates a PDF with pdfcpu and reports its page count. It is
// informational: extraction does not depend on it.
func PageCount(data []byte) (int, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return 0, eris.Wrap(err, "pdfcpu read")
	}
	return ctx.PageCount, nil
}
