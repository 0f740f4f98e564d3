package extract

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// MaxTextLength caps the characters kept from any uploaded document.
const MaxTextLength = 15000

var allowedExtensions = map[string]bool{
	"pdf":  true,
	"txt":  true,
	"doc":  true,
	"docx": true,
}

// Error is a user-facing extraction failure. Message is safe to return to clients.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func userError(msg string) *Error {
	return &Error{Message: msg}
}

// FromUpload extracts plain text from an uploaded resume.
// Libraries used: github.com/ledongthuc/pdf (PDF) and github.com/nguyenthenguyen/docx (DOC/DOCX).
func FromUpload(filename string, data []byte) (string, error) {
	if filename == "" {
		return "", userError("No file provided.")
	}

	ext := Extension(filename)
	if !allowedExtensions[ext] {
		return "", userError(fmt.Sprintf("Unsupported file type '.%s'. Supported formats: PDF, TXT, DOC, DOCX.", ext))
	}
	if len(data) == 0 {
		return "", userError("Uploaded file is empty.")
	}

	switch ext {
	case "pdf":
		return fromPDF(data)
	case "txt":
		return fromTXT(data)
	default:
		return fromDOCX(data)
	}
}

// FromPath reads a local file and applies the same rules as FromUpload.
func FromPath(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return FromUpload(filepath.Base(path), data)
}

// Extension returns the lowercase text after the last dot, or "" when there is none.
func Extension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}

func fromPDF(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &Error{Message: fmt.Sprintf("Could not read PDF: %v", r), Err: fmt.Errorf("pdf panic: %v", r)}
		}
	}()

	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &Error{Message: "Could not read PDF: " + err.Error(), Err: err}
	}

	pages := make([]string, 0, pdfReader.NumPage())
	for i := 1; i <= pdfReader.NumPage(); i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", &Error{Message: "Could not read PDF: " + err.Error(), Err: err}
		}
		pages = append(pages, pageText)
	}

	text = strings.TrimSpace(strings.Join(pages, "\n"))
	if text == "" {
		return "", userError("PDF appears to be image-based or empty. Please paste your resume text instead.")
	}
	return capText(text), nil
}

func fromTXT(data []byte) (string, error) {
	text := strings.TrimSpace(strings.ToValidUTF8(string(data), ""))
	if text == "" {
		return "", userError("Text file is empty.")
	}
	return capText(text), nil
}

func fromDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &Error{Message: "Could not read DOCX file: " + err.Error(), Err: err}
	}
	defer doc.Close()

	paragraphs, err := docxParagraphs(doc.Editable().GetContent())
	if err != nil {
		return "", &Error{Message: "Could not read DOCX file: " + err.Error(), Err: err}
	}

	text := strings.TrimSpace(strings.Join(paragraphs, "\n"))
	if text == "" {
		return "", userError("DOCX file appears to be empty.")
	}
	return capText(text), nil
}

// docxParagraphs walks WordprocessingML and returns the visible text of each w:p.
func docxParagraphs(raw string) ([]string, error) {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var (
		paragraphs []string
		current    strings.Builder
		inPara     bool
		inText     bool
	)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inPara = true
				current.Reset()
			case "t":
				inText = true
			case "tab":
				if inPara {
					current.WriteString("\t")
				}
			case "br", "cr":
				if inPara {
					current.WriteString("\n")
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				paragraphs = append(paragraphs, current.String())
				inPara = false
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
	return paragraphs, nil
}

func capText(text string) string {
	count := 0
	for i := range text {
		if count == MaxTextLength {
			return text[:i]
		}
		count++
	}
	return text
}
