package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/w-h-a/manualqa/extractor"
)

type pdfExtractor struct{}

func (e *pdfExtractor) Extract(ctx context.Context, data []byte) (text string, err error) {
	// the pdf library panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("failed to extract text: %v", r)
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var sb strings.Builder

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		sb.WriteString(content)
		sb.WriteString("\n\n")
	}

	text = sb.String()
	if len(strings.TrimSpace(text)) == 0 {
		return "", errors.New("no extractable text in pdf")
	}

	return text, nil
}

func NewExtractor() extractor.Extractor {
	return &pdfExtractor{}
}
