// Command enqueue stores a local file in object storage and publishes a
// process request for it. It is the operator-side entry point while the
// upload surface is out of scope.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/medscrub/medscrub/internal/config"
	"github.com/medscrub/medscrub/internal/core/domain"
	"github.com/medscrub/medscrub/internal/infrastructure/queue/nats"
	"github.com/medscrub/medscrub/internal/infrastructure/storage/localfs"
)

func main() {
	var (
		path      = flag.String("file", "", "path of the document to process")
		format    = flag.String("format", "", "document format (image, pdf, word-document, plain-text, spreadsheet); guessed from the extension when empty")
		aiSummary = flag.Bool("ai-summary", true, "request an AI-generated summary")
	)
	flag.Parse()

	if *path == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	ctx := context.Background()

	docFormat, err := resolveFormat(*format, *path)
	if err != nil {
		log.Fatalf("resolve format: %v", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		log.Fatalf("init object storage: %v", err)
	}

	f, err := os.Open(*path)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()

	key := uuid.NewString() + filepath.Ext(*path)
	if err := storage.Save(ctx, key, f); err != nil {
		log.Fatalf("store file: %v", err)
	}

	queue, err := nats.New(cfg.NATSURL, cfg.NATSSubject)
	if err != nil {
		log.Fatalf("connect queue: %v", err)
	}
	defer queue.Close()

	req := domain.ProcessRequest{
		ID:            uuid.NewString(),
		StorageKey:    key,
		Format:        docFormat,
		WantAISummary: *aiSummary,
	}
	if err := queue.PublishProcessRequest(ctx, req); err != nil {
		log.Fatalf("publish request: %v", err)
	}

	fmt.Printf("enqueued %s as %s (format %s)\n", *path, req.ID, docFormat)
}

func resolveFormat(explicit, path string) (domain.Format, error) {
	if explicit != "" {
		return domain.Format(explicit), nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp":
		return domain.FormatImage, nil
	case ".pdf":
		return domain.FormatPDF, nil
	case ".docx":
		return domain.FormatWord, nil
	case ".txt", ".md", ".text":
		return domain.FormatPlainText, nil
	case ".xlsx", ".xlsm":
		return domain.FormatSpreadsheet, nil
	default:
		return "", fmt.Errorf("cannot guess format for %q, pass -format", path)
	}
}
