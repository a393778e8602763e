package letsosdk

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vauradkar/letso/internal/pfs"
	"github.com/vauradkar/letso/internal/utils"
)

// UploadParams describes one file upload. The file is stored as Dir/Name.
type UploadParams struct {
	Dir       pfs.Path
	Name      string
	Data      []byte
	Overwrite bool
	Stats     *pfs.FileStat
}

// Upload stores a file on the server stamped with params.Stats.
func (s *LetsoSDK) Upload(ctx context.Context, params *UploadParams) error {
	pathJSON, err := jsonMarshal(params.Dir)
	if err != nil {
		return fmt.Errorf("encode path: %w", err)
	}
	statsJSON, err := jsonMarshal(params.Stats)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetRetryCount(0).
		SetFileBytes("file", params.Name, params.Data).
		SetFormData(map[string]string{
			"path":      string(pathJSON),
			"overwrite": strconv.FormatBool(params.Overwrite),
			"stats":     string(statsJSON),
		}).
		Post(apiUploadFile)

	return handleAPIError(resp, err, "upload")
}

// UploadFile uploads a local file into dir, keeping its name and modification time.
func (s *LetsoSDK) UploadFile(ctx context.Context, localPath string, dir pfs.Path, overwrite bool) error {
	if !utils.FileExists(localPath) {
		return ErrFileNotFound
	}

	stats, err := pfs.StatPath(localPath)
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}
	data, err := os.ReadFile(localPath)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	return s.Upload(ctx, &UploadParams{
		Dir:       dir,
		Name:      filepath.Base(localPath),
		Data:      data,
		Overwrite: overwrite,
		Stats:     &stats,
	})
}

// Download returns the content of a file and the name the server suggests for it.
func (s *LetsoSDK) Download(ctx context.Context, path pfs.Path) ([]byte, string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(path).
		Post(apiDownloadFile)

	if err := handleAPIError(resp, err, "download"); err != nil {
		return nil, "", err
	}

	data, err := resp.ToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("read download: %w", err)
	}

	name, _ := path.Basename()
	if _, params, err := mime.ParseMediaType(resp.GetHeader("Content-Disposition")); err == nil && params["filename"] != "" {
		name = params["filename"]
	}
	return data, name, nil
}

// DownloadFile writes the content of path to localPath, creating parent directories.
func (s *LetsoSDK) DownloadFile(ctx context.Context, path pfs.Path, localPath string) error {
	data, _, err := s.Download(ctx, path)
	if err != nil {
		return err
	}
	if err := utils.EnsureParent(localPath); err != nil {
		return fmt.Errorf("create parent: %w", err)
	}
	return os.WriteFile(localPath, data, 0o644)
}

// Delete removes files in order. The server stops at the first failure.
func (s *LetsoSDK) Delete(ctx context.Context, paths ...pfs.Path) error {
	if paths == nil {
		paths = []pfs.Path{}
	}
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(paths).
		Post(apiDeleteFiles)

	return handleAPIError(resp, err, "delete")
}
