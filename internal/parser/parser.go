package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/tealeg/xlsx"
	"github.com/xuri/excelize/v2"

	"skillgap/internal/models"
)

// SupportedExtensions lists the file types the ingestion pipeline accepts.
var SupportedExtensions = []string{".txt", ".md", ".pdf", ".docx", ".xlsx", ".ods"}

// Supported reports whether a file can be handed to ExtractText.
func Supported(filePath string) bool {
	ext := strings.ToLower(filepath.Ext(filePath))
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// ExtractText pulls the plain text out of a document. The returned text is
// what the chunker operates on; formatting is not preserved.
func ExtractText(filePath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".pdf":
		return extractPDF(filePath)
	case ".docx":
		return extractDOCX(filePath)
	case ".xlsx":
		return extractXLSX(filePath)
	case ".ods":
		return extractODS(filePath)
	case ".txt", ".md":
		return extractText(filePath)
	default:
		return "", fmt.Errorf("unsupported file format: %s", ext)
	}
}

func extractPDF(filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return "", err
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return "", fmt.Errorf("reading PDF: %w", err)
	}

	var text strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// A single broken page should not sink the document.
			continue
		}
		text.WriteString(pageText)
		text.WriteString("\n\n")
	}

	out := strings.TrimSpace(text.String())
	if out == "" {
		return "", fmt.Errorf("no text content in PDF")
	}
	return out, nil
}

func extractDOCX(filePath string) (string, error) {
	r, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return "", err
	}
	defer r.Close()

	content := r.Editable().GetContent()
	var text strings.Builder
	for _, p := range strings.Split(content, "\n") {
		if strings.TrimSpace(p) == "" {
			continue
		}
		text.WriteString(p)
		text.WriteString("\n")
	}
	return strings.TrimSpace(text.String()), nil
}

func extractXLSX(filePath string) (string, error) {
	f, err := xlsx.OpenFile(filePath)
	if err != nil {
		return "", err
	}

	var text strings.Builder
	for _, sheet := range f.Sheets {
		text.WriteString(fmt.Sprintf("Sheet: %s\n", sheet.Name))
		for _, row := range sheet.Rows {
			for _, cell := range row.Cells {
				text.WriteString(cell.String() + "\t")
			}
			text.WriteString("\n")
		}
	}
	return strings.TrimSpace(text.String()), nil
}

func extractODS(filePath string) (string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var text strings.Builder
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			continue
		}
		text.WriteString(fmt.Sprintf("Sheet: %s\n", sheetName))
		for _, row := range rows {
			for _, cell := range row {
				text.WriteString(cell + "\t")
			}
			text.WriteString("\n")
		}
	}
	return strings.TrimSpace(text.String()), nil
}

func extractText(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// ChunkText splits content into spans of at most maxChars with overlapChars
// of overlap between neighbours. Break points prefer whitespace or sentence
// ends within the last tenth of the chunk so qualification lists stay whole.
func ChunkText(content string, maxChars, overlapChars int) []models.Chunk {
	if maxChars <= 0 {
		return nil
	}
	if overlapChars < 0 {
		overlapChars = 0
	}
	if overlapChars >= maxChars {
		overlapChars = maxChars / 2
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	contentLen := len(content)
	if contentLen <= maxChars {
		return []models.Chunk{{Content: content, Sequence: 1}}
	}

	var chunks []models.Chunk
	seq := 1
	start := 0
	for start < contentLen {
		end := min(start+maxChars, contentLen)

		if end < contentLen {
			lookBack := min(maxChars/10, end-start)
			for i := end - 1; i >= end-lookBack && i > start; i-- {
				if content[i] == ' ' || content[i] == '\n' || content[i] == '.' {
					end = i + 1
					break
				}
			}
		}

		if chunk := strings.TrimSpace(content[start:end]); chunk != "" {
			chunks = append(chunks, models.Chunk{Content: chunk, Sequence: seq})
			seq++
		}

		if end >= contentLen {
			break
		}
		// Advance from the chosen break point, not the nominal chunk
		// size: a clean break that retreated must not leave a gap of
		// dropped text before the next chunk.
		next := end - overlapChars
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}
