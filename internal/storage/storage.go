// Package storage reads theme assets and stores exported documents, either
// on the local disk or in a DigitalOcean Spaces (S3 compatible) bucket.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var ErrInvalidName = errors.New("invalid asset name")

// Storage is both the theme asset source and the export sink.
type Storage interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Save(ctx context.Context, name string, data []byte) (string, error)
}

type LocalStorage struct {
	assetDir  string
	exportDir string
	publicURL string
}

type SpacesStorage struct {
	client *s3.S3
	bucket string
	cdnURL string
}

// NewLocalStorage serves assets from assetDir and writes exports to
// exportDir. publicURL is the route prefix exports are served under.
func NewLocalStorage(assetDir, exportDir, publicURL string) *LocalStorage {
	return &LocalStorage{assetDir: assetDir, exportDir: exportDir, publicURL: strings.TrimSuffix(publicURL, "/")}
}

func NewSpacesStorage(endpoint, region, bucket, cdnURL, accessKey, secretKey string) (*SpacesStorage, error) {
	config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(accessKey, secretKey, ""),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String(region),
		S3ForcePathStyle: aws.Bool(false),
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &SpacesStorage{
		client: s3.New(sess),
		bucket: bucket,
		cdnURL: strings.TrimSuffix(cdnURL, "/"),
	}, nil
}

var (
	unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
	foldMarks   = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	dotless     = strings.NewReplacer("ı", "i", "İ", "I")
)

// normalizeFilename folds diacritics, drops characters that are unsafe in
// URLs and appends a timestamp. "imsakiye-Bad Tölz-Bayern-2026.pdf" becomes
// "imsakiye-Bad_Tolz-Bayern-2026_20260301_120000.pdf".
func normalizeFilename(originalFilename string, now time.Time) string {
	ext := filepath.Ext(originalFilename)
	baseName := strings.TrimSuffix(originalFilename, ext)

	if folded, _, err := transform.String(foldMarks, dotless.Replace(baseName)); err == nil {
		baseName = folded
	}
	baseName = strings.ReplaceAll(baseName, " ", "_")
	baseName = unsafeChars.ReplaceAllString(baseName, "")
	if baseName == "" {
		baseName = "file"
	}
	return fmt.Sprintf("%s_%s%s", baseName, now.Format("20060102_150405"), ext)
}

// assetName rejects anything that is not a bare file name.
func assetName(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return name, nil
}

func (ls *LocalStorage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	name, err := assetName(name)
	if err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(ls.assetDir, name))
}

func (ls *LocalStorage) Save(ctx context.Context, name string, data []byte) (string, error) {
	normalized := normalizeFilename(name, time.Now())
	log.Debug().Str("original", name).Str("normalized", normalized).Msg("export file name normalized")

	if err := os.MkdirAll(ls.exportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(ls.exportDir, normalized), data, 0644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	return ls.publicURL + "/" + normalized, nil
}

// OpenExport reads back a document stored by Save. key is the last path
// segment of the URL Save returned.
func (ls *LocalStorage) OpenExport(ctx context.Context, key string) (io.ReadCloser, error) {
	key, err := assetName(key)
	if err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(ls.exportDir, key))
}

// Sweep deletes stored exports last written before cutoff and reports how
// many were removed. A missing export directory is not an error.
func (ls *LocalStorage) Sweep(cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(ls.exportDir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to list exports: %w", err)
	}

	removed := 0
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(ls.exportDir, e.Name())); err != nil {
			log.Warn().Err(err).Str("file", e.Name()).Msg("failed to remove expired export")
			continue
		}
		removed++
	}
	return removed, nil
}

func (ss *SpacesStorage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	name, err := assetName(name)
	if err != nil {
		return nil, err
	}
	out, err := ss.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(ss.bucket),
		Key:    aws.String("themes/" + name),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s from Spaces: %w", name, err)
	}
	return out.Body, nil
}

func (ss *SpacesStorage) Save(ctx context.Context, name string, data []byte) (string, error) {
	normalized := normalizeFilename(name, time.Now())
	key := "exports/" + normalized

	_, err := ss.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(ss.bucket),
		Key:                aws.String(key),
		Body:               bytes.NewReader(data),
		ContentType:        aws.String(getContentType(normalized)),
		ContentDisposition: aws.String(ContentDisposition(name)),
		ACL:                aws.String("public-read"),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to upload export to Spaces")
		return "", fmt.Errorf("failed to upload to Spaces: %w", err)
	}
	return fmt.Sprintf("%s/%s", ss.cdnURL, key), nil
}

func getContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".pdf":
		return "application/pdf"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}
