package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
)

var (
	ErrEmptyPDF    = errors.New("pdf is empty")
	ErrNoTextLayer = errors.New("no text extracted from PDF")
)

type PDFServiceInterface interface {
	ExtractText(ctx context.Context, data []byte) (string, error)
}

// PDFService reads the text layer of a PDF with MuPDF and falls back to a
// pure Go reader when MuPDF fails or returns nothing.
type PDFService struct{}

func NewPDFService() *PDFService {
	return &PDFService{}
}

func (s *PDFService) ExtractText(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyPDF
	}

	text, err := extractWithFitz(ctx, data)
	if err == nil && strings.TrimSpace(text) != "" {
		return text, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	log.Printf("go-fitz extraction failed (%v), falling back to pdf reader", err)

	text, fallbackErr := extractWithPDFReader(data)
	if fallbackErr != nil {
		return "", fmt.Errorf("failed to extract text: %w", errors.Join(err, fallbackErr))
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrNoTextLayer
	}
	return text, nil
}

func extractWithFitz(ctx context.Context, data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var fullText strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		pageText, err := doc.Text(n)
		if err != nil {
			return "", fmt.Errorf("page %d: failed to extract text: %w", n+1, err)
		}
		fullText.WriteString(pageText)
		fullText.WriteString("\n")
	}
	return fullText.String(), nil
}

func extractWithPDFReader(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting plain text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("reading text buffer: %w", err)
	}
	return buf.String(), nil
}
