package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wavrons/stargate/internal/app"
	"github.com/wavrons/stargate/internal/service"
	"github.com/wavrons/stargate/internal/store"
	"github.com/wavrons/stargate/internal/workers"
	"github.com/wavrons/stargate/models"
)

var (
	errBatchFailed = errors.New("one or more files failed")
	errSkipped     = errors.New("skipped after an earlier failure")
)

func (c *cli) uploadCmd() *cobra.Command {
	var contentType string
	cmd := &cobra.Command{
		Use:   "upload <scope> <file>...",
		Short: "Encrypt and upload images into a scope",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			vault, err := c.open(ctx)
			if err != nil {
				return err
			}
			scopeID, files := args[0], args[1:]

			results := make([]models.VaultEntry, len(files))
			jobs := make([]workers.Worker, len(files))
			for i, file := range files {
				jobs[i] = workers.WorkerFunc(func(ctx context.Context) error {
					entry, err := c.uploadFile(ctx, vault.Services.LibraryService, scopeID, file, contentType)
					results[i] = entry
					return err
				})
			}

			errs := c.runBatch(ctx, jobs)
			return c.report(files, errs, func(i int) any { return results[i] }, func(i int) string {
				return fmt.Sprintf("%s\t%s\t%s", files[i], results[i].Path, app.FormatMB(results[i].SizeBytes))
			})
		},
	}
	cmd.Flags().StringVar(&contentType, "content-type", "", "Override the detected content type")
	return cmd
}

func (c *cli) uploadFile(ctx context.Context, library service.LibraryService, scopeID, file, contentType string) (models.VaultEntry, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return models.VaultEntry{}, err
	}
	defer clear(data)

	return library.Add(ctx, models.UploadRequest{
		ScopeID:     scopeID,
		FileName:    filepath.Base(file),
		ContentType: contentType,
		Data:        data,
		Progress:    func(stage models.ProgressStage, percent int) {
			c.log.Debug().Str("file", file).Str("stage", string(stage)).Int("percent", percent).Msg("upload progress")
		},
	})
}

func (c *cli) downloadCmd() *cobra.Command {
	var (
		outDir        string
		originalNames bool
		asDataURL     bool
	)
	cmd := &cobra.Command{
		Use:   "download <scope> <object>...",
		Short: "Download and decrypt images",
		Long:  "Download and decrypt images. An object is either a file name inside the scope or a full repository path.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			vault, err := c.open(ctx)
			if err != nil {
				return err
			}
			library := vault.Services.LibraryService
			scopeID, objects := args[0], args[1:]

			if !asDataURL {
				if err = os.MkdirAll(outDir, 0o755); err != nil {
					return err
				}
			}

			results := make([]downloaded, len(objects))
			jobs := make([]workers.Worker, len(objects))
			for i, object := range objects {
				jobs[i] = workers.WorkerFunc(func(ctx context.Context) error {
					var err error
					if asDataURL {
						results[i], err = c.fetchDataURL(ctx, library, scopeID, object)
					} else {
						results[i], err = c.downloadObject(ctx, library, scopeID, object, outDir, originalNames)
					}
					return err
				})
			}

			errs := c.runBatch(ctx, jobs)
			return c.report(objects, errs, func(i int) any { return results[i] }, func(i int) string {
				if asDataURL {
					return objects[i] + "\t" + results[i].DataURL
				}
				return objects[i] + "\t" + results[i].File
			})
		},
	}
	cmd.Flags().StringVar(&outDir, "out", ".", "Directory to write decrypted files to")
	cmd.Flags().BoolVar(&originalNames, "original-names", false, "Name files as they were uploaded; existing files are not overwritten")
	cmd.Flags().BoolVar(&asDataURL, "data-url", false, "Print each image as a data: URL instead of writing files")
	return cmd
}

type downloaded struct {
	Object  string `json:"object"`
	File    string `json:"file,omitempty"`
	DataURL string `json:"data_url,omitempty"`
}

func (c *cli) downloadObject(ctx context.Context, library service.LibraryService, scopeID, object, outDir string, originalNames bool) (downloaded, error) {
	objectPath := resolveObjectPath(library, scopeID, object)
	res, err := library.Fetch(ctx, scopeID, objectPath)
	if err != nil {
		return downloaded{}, err
	}
	defer res.Release()

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	name := strings.TrimSuffix(path.Base(objectPath), service.EncryptedSuffix)
	if originalNames {
		if uploaded, ok := c.uploadedName(ctx, library, scopeID, objectPath); ok {
			name = uploaded
			flags = os.O_CREATE | os.O_WRONLY | os.O_EXCL
		}
	}

	target := filepath.Join(outDir, name)
	f, err := os.OpenFile(target, flags, 0o600)
	if err != nil {
		return downloaded{}, err
	}
	if _, err = io.Copy(f, res.Reader()); err != nil {
		_ = f.Close()
		return downloaded{}, err
	}
	if err = f.Close(); err != nil {
		return downloaded{}, err
	}

	return downloaded{Object: object, File: target}, nil
}

func (c *cli) fetchDataURL(ctx context.Context, library service.LibraryService, scopeID, object string) (downloaded, error) {
	res, err := library.Fetch(ctx, scopeID, resolveObjectPath(library, scopeID, object))
	if err != nil {
		return downloaded{}, err
	}
	defer res.Release()

	return downloaded{Object: object, DataURL: res.DataURL()}, nil
}

// uploadedName returns the file name the ledger recorded for objectPath.
func (c *cli) uploadedName(ctx context.Context, library service.LibraryService, scopeID, objectPath string) (string, bool) {
	entry, err := library.Entry(ctx, scopeID, objectPath)
	if err != nil {
		if !errors.Is(err, store.ErrEntryNotFound) {
			c.log.Warn().Err(err).Str("path", objectPath).Msg("ledger lookup failed, keeping object name")
		}
		return "", false
	}

	name := filepath.Base(entry.FileName)
	switch name {
	case ".", "..", string(filepath.Separator):
		return "", false
	}
	return name, true
}

func (c *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <scope> <object>...",
		Short: "Delete images and their ledger entries",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			vault, err := c.open(ctx)
			if err != nil {
				return err
			}
			library := vault.Services.LibraryService
			scopeID, objects := args[0], args[1:]

			jobs := make([]workers.Worker, len(objects))
			for i, object := range objects {
				jobs[i] = workers.WorkerFunc(func(ctx context.Context) error {
					return library.Remove(ctx, scopeID, resolveObjectPath(library, scopeID, object))
				})
			}

			errs := c.runBatch(ctx, jobs)
			return c.report(objects, errs, func(i int) any { return map[string]string{"deleted": objects[i]} }, func(i int) string {
				return "deleted\t" + objects[i]
			})
		},
	}
}

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls <scope>",
		Aliases: []string{"list"},
		Short:   "List the images recorded for a scope",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vault, err := c.open(cmd.Context())
			if err != nil {
				return err
			}

			entries, err := vault.Services.LibraryService.List(cmd.Context(), args[0])
			if err != nil {
				return errors.New(app.UserMessage(err))
			}

			if c.output == "json" {
				return json.NewEncoder(c.out).Encode(entries)
			}

			w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "FILE\tSIZE\tTYPE\tCREATED\tPATH")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.FileName, app.FormatMB(e.SizeBytes), e.ContentType, e.CreatedAt.Format("2006-01-02 15:04"), e.Path)
			}
			return w.Flush()
		},
	}
}

func (c *cli) usageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "usage <scope>",
		Short: "Show storage usage of a scope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vault, err := c.open(cmd.Context())
			if err != nil {
				return err
			}

			usage, err := vault.Services.LibraryService.Usage(cmd.Context(), args[0])
			if err != nil {
				return errors.New(app.UserMessage(err))
			}

			if c.output == "json" {
				return json.NewEncoder(c.out).Encode(usage)
			}
			fmt.Fprintf(c.out, "%s / %s used, %s remaining\n",
				app.FormatMB(usage.UsedBytes), app.FormatMB(usage.LimitBytes), app.FormatMB(usage.RemainingBytes))
			return nil
		},
	}
}

// resolveObjectPath accepts either a bare object name or a full path.
func resolveObjectPath(library service.LibraryService, scopeID, object string) string {
	if strings.Contains(object, "/") {
		return object
	}
	return library.ObjectPath(scopeID, object)
}

// runBatch runs jobs on the configured pool and returns their errors by
// position. With --fail-fast nothing starts after the first failure and the
// jobs left out report errSkipped.
func (c *cli) runBatch(ctx context.Context, jobs []workers.Worker) []error {
	pool := workers.NewPool(c.cfg.Vault.Workers, c.log)
	if !c.failFast {
		errs, _ := pool.RunAll(ctx, jobs...)
		return errs
	}

	errs := make([]error, len(jobs))
	tracked := make([]workers.Worker, len(jobs))
	for i, job := range jobs {
		errs[i] = errSkipped
		tracked[i] = workers.WorkerFunc(func(ctx context.Context) error {
			if ctx.Err() != nil {
				return nil
			}
			errs[i] = job.Run(ctx)
			return errs[i]
		})
	}
	_ = pool.Run(ctx, tracked...)

	return errs
}

// report prints one line (or JSON value) per successful item and the user
// message of every failed one.
func (c *cli) report(items []string, errs []error, value func(i int) any, line func(i int) string) error {
	var (
		failed int
		values []any
	)

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	for i := range items {
		if errs[i] != nil {
			failed++
			if errors.Is(errs[i], errSkipped) {
				c.log.Warn().Str("item", items[i]).Msg(errSkipped.Error())
				continue
			}
			c.log.Error().Err(errs[i]).Str("item", items[i]).Msg(app.UserMessage(errs[i]))
			continue
		}
		if c.output == "json" {
			values = append(values, value(i))
			continue
		}
		fmt.Fprintln(w, line(i))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if c.output == "json" && values != nil {
		if err := json.NewEncoder(c.out).Encode(values); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errBatchFailed, failed, len(items))
	}
	return nil
}
