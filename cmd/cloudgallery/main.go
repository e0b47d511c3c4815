package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"

	"cloudgallery/internal/cache"
	"cloudgallery/internal/config"
	"cloudgallery/internal/gallery"
	"cloudgallery/internal/mediaapi"
	"cloudgallery/internal/preview"
	"cloudgallery/internal/types"
	"cloudgallery/internal/uploader"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	// load config
	cfg := config.MustLoad()

	client := mediaapi.NewClient(cfg.API.BaseURL, cfg.API.Timeout)

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
		DB:   cfg.Redis.DB,
	})
	store := cache.NewService(client, redisClient, cfg.Redis.ListTTL, cfg.Redis.BinaryTTL)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "list":
		err = runList(ctx, store)
	case "upload":
		err = runUpload(ctx, store, os.Args[2:])
	case "download":
		err = runDownload(ctx, client, store, cfg, os.Args[2:])
	case "preview":
		err = runPreview(ctx, store, cfg, os.Args[2:])
	case "delete":
		err = runDelete(ctx, store, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		slog.Error("command failed",
			slog.String("command", os.Args[1]),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func runList(ctx context.Context, store *cache.Service) error {
	medias, err := store.List(ctx)
	if err != nil {
		return err
	}

	gallery.Render(os.Stdout, medias, time.Now())
	return nil
}

func runUpload(ctx context.Context, store *cache.Service, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: cloudgallery upload <file> [file...]")
	}

	sources := make([]uploader.Source, 0, len(args))
	for _, path := range args {
		src, err := uploader.FromFile(path)
		if err != nil {
			return err
		}
		sources = append(sources, src)
	}

	queue := uploader.NewQueue(store, store)
	queue.Enqueue(sources)

	n := queue.StartUpload(ctx)

	// A zero-success batch leaves the queue intact; show each item's state.
	gallery.RenderQueue(os.Stdout, queue.Items())

	if n == 0 {
		return errors.New("no files were uploaded")
	}

	fmt.Printf("Загружено: %d\n", n)
	return nil
}

func runDownload(ctx context.Context, client *mediaapi.Client, store *cache.Service, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("download", flag.ExitOnError)
	dir := fs.String("o", cfg.Downloads.Dir, "directory to save the file into")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return errors.New("usage: cloudgallery download [-o dir] <id>")
	}
	id := fs.Arg(0)

	media, err := findMedia(ctx, store, id)
	if err != nil {
		return err
	}

	path, err := client.Download(ctx, id, media.Filename, *dir)
	if err != nil {
		return err
	}

	fmt.Println("Сохранено:", path)
	return nil
}

func runPreview(ctx context.Context, store *cache.Service, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	dir := fs.String("o", os.TempDir(), "directory for preview artifacts")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return errors.New("usage: cloudgallery preview [-o dir] <id>")
	}
	id := fs.Arg(0)

	media, err := findMedia(ctx, store, id)
	if err != nil {
		return err
	}

	data, err := store.FetchBinary(ctx, id)
	if err != nil {
		return err
	}

	result, err := preview.Render(media, data, cfg.Preview.MaxDimension, *dir)
	if err != nil {
		return err
	}

	if result.Note != "" {
		fmt.Println(result.Note)
		return nil
	}

	fmt.Println(result.Path)
	return nil
}

func runDelete(ctx context.Context, store *cache.Service, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: cloudgallery delete <id>")
	}

	if err := store.Delete(ctx, args[0]); err != nil {
		return err
	}

	fmt.Println("Удалено")
	return nil
}

func findMedia(ctx context.Context, store *cache.Service, id string) (types.Media, error) {
	medias, err := store.List(ctx)
	if err != nil {
		return types.Media{}, err
	}

	for _, m := range medias {
		if m.ID == id {
			return m, nil
		}
	}

	return types.Media{}, mediaapi.ErrNotFound
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: cloudgallery <command> [arguments]

commands:
  list                      show the gallery grouped by day
  upload <file> [file...]   upload files to the media service
  download [-o dir] <id>    download one file
  preview [-o dir] <id>     generate a local preview for one file
  delete <id>               delete one file`)
}
