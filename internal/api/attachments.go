package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/Joseda-hg/lazytracker/internal/model"
)

// MaxAttachmentSize is the largest file accepted for upload.
const MaxAttachmentSize = 10 * 1024 * 1024

// AllowedAttachmentTypes lists the content types accepted for upload.
var AllowedAttachmentTypes = []string{
	"application/pdf",
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
}

var (
	ErrUnsupportedType = errors.New("only PDF and image files (JPEG, PNG, GIF, WebP) are allowed")
	ErrFileTooLarge    = errors.New("file size must be less than 10MB")
)

// ValidationError reports a file rejected before any request was sent.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", filepath.Base(e.Path), e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// AttachmentFile is a local file that passed ValidateAttachment.
type AttachmentFile struct {
	Path        string
	Name        string
	ContentType string
	Size        int64
}

// ValidateAttachment sniffs the file's content type and checks it against the
// allow-list and the size limit.
func ValidateAttachment(path string) (AttachmentFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return AttachmentFile{}, err
	}
	if info.IsDir() {
		return AttachmentFile{}, fmt.Errorf("%s is a directory", path)
	}

	detected, err := mimetype.DetectFile(path)
	if err != nil {
		return AttachmentFile{}, fmt.Errorf("detect content type: %w", err)
	}

	contentType := ""
	for _, allowed := range AllowedAttachmentTypes {
		if detected.Is(allowed) {
			contentType = allowed
			break
		}
	}
	if contentType == "" {
		return AttachmentFile{}, &ValidationError{Path: path, Err: ErrUnsupportedType}
	}
	if info.Size() > MaxAttachmentSize {
		return AttachmentFile{}, &ValidationError{Path: path, Err: ErrFileTooLarge}
	}

	return AttachmentFile{
		Path:        path,
		Name:        filepath.Base(path),
		ContentType: contentType,
		Size:        info.Size(),
	}, nil
}

func (c *Client) UploadAttachment(ctx context.Context, noteID int64, path string) (model.Attachment, error) {
	file, err := ValidateAttachment(path)
	if err != nil {
		return model.Attachment{}, err
	}

	body, contentType, err := multipartBody(file)
	if err != nil {
		return model.Attachment{}, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, notePath(noteID)+"/attachments", nil, body)
	if err != nil {
		return model.Attachment{}, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.send(req)
	if err != nil {
		return model.Attachment{}, err
	}
	defer resp.Body.Close()

	var attachment model.Attachment
	if err := decodeJSON(resp.Body, &attachment); err != nil {
		return model.Attachment{}, fmt.Errorf("decode attachment: %w", err)
	}
	return attachment, nil
}

func multipartBody(file AttachmentFile) (*bytes.Buffer, string, error) {
	source, err := os.Open(file.Path)
	if err != nil {
		return nil, "", err
	}
	defer source.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(file.Name)))
	header.Set("Content-Type", file.ContentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, source); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}

func (c *Client) DeleteAttachment(ctx context.Context, attachmentID int64) error {
	return c.doJSON(ctx, http.MethodDelete, attachmentPath(attachmentID), nil, nil, nil)
}

// DownloadAttachment saves the payload as filename inside dir and returns the
// written path. Nothing is left behind when the transfer fails.
func (c *Client) DownloadAttachment(ctx context.Context, attachmentID int64, filename, dir string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, attachmentPath(attachmentID)+"/download", nil, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.send(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("download attachment %d: %w", attachmentID, err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	target := filepath.Join(dir, safeFilename(filename, attachmentID))
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", err
	}
	return target, nil
}

func attachmentPath(attachmentID int64) string {
	return fmt.Sprintf("/attachments/%d", attachmentID)
}

func safeFilename(filename string, attachmentID int64) string {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return fmt.Sprintf("attachment-%d", attachmentID)
	}
	return name
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
