// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/wavrons/stargate/internal/codec"
	"github.com/wavrons/stargate/internal/config"
	"github.com/wavrons/stargate/internal/logger"
	"github.com/wavrons/stargate/internal/utils"
	"github.com/wavrons/stargate/models"
)

const (
	githubAcceptJSON  = "application/vnd.github+json"
	githubAcceptRaw   = "application/vnd.github.raw+json"
	githubAPIVersion  = "2022-11-28"
	githubEncodingNil = "none"
)

type githubContentBackend struct {
	client *utils.HTTPClient

	owner  string
	repo   string
	branch string

	logger *logger.Logger
}

// NewGitHubContentBackend constructs a GitHub Contents API implementation of
// [ContentBackend] for the repository described by repoCfg. token is the
// already opened access token (see crypto.OpenSecret for sealed tokens).
//
// Requests are never retried. adapterCfg.RequestTimeout bounds each call in
// addition to the caller's context.
func NewGitHubContentBackend(repoCfg config.Repo, adapterCfg config.Adapter, token string, logger *logger.Logger) (ContentBackend, error) {
	baseURL, err := normalizeBaseURL(repoCfg.APIURL)
	if err != nil {
		return nil, fmt.Errorf("invalid repository api url: %w", err)
	}
	if repoCfg.Owner == "" || repoCfg.Name == "" {
		return nil, fmt.Errorf("%w: repository owner and name are required", ErrBadRequest)
	}

	client := utils.NewTracedHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout).
		SetRetryCount(0).
		SetHeader("Accept", githubAcceptJSON).
		SetHeader("X-GitHub-Api-Version", githubAPIVersion)
	if token = strings.TrimSpace(token); token != "" {
		client.SetAuthToken(token)
	}

	return &githubContentBackend{
		client: client,
		owner:  repoCfg.Owner,
		repo:   repoCfg.Name,
		branch: repoCfg.Branch,
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// contentsPath builds /repos/{owner}/{repo}/contents/{path} escaping every
// segment on its own so that the separators survive.
func (g *githubContentBackend) contentsPath(path string) (string, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return "", ErrInvalidPath
	}

	segments := strings.Split(path, "/")
	for i, s := range segments {
		if s == "" || s == "." || s == ".." {
			return "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
		}
		segments[i] = url.PathEscape(s)
	}

	return "/repos/" + url.PathEscape(g.owner) + "/" + url.PathEscape(g.repo) +
		"/contents/" + strings.Join(segments, "/"), nil
}

// GetContent implements [ContentBackend]. It issues
// GET /repos/{owner}/{repo}/contents/{path}?ref={branch}. Files above the
// API's inline limit come back with encoding "none"; their bytes are then
// fetched with the raw media type and re-encoded so Content is always set.
func (g *githubContentBackend) GetContent(ctx context.Context, path string) (models.ContentFile, error) {
	endpoint, err := g.contentsPath(path)
	if err != nil {
		return models.ContentFile{}, err
	}

	resp, err := g.request(ctx).Get(endpoint)
	if err != nil {
		return models.ContentFile{}, mapTransportError("get content request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ContentFile{}, err
	}

	body := bytes.TrimSpace(resp.Body())
	if len(body) > 0 && body[0] == '[' {
		return models.ContentFile{}, fmt.Errorf("%w: %s is a directory", ErrNotAFile, path)
	}

	var file models.ContentFile
	if err = json.Unmarshal(body, &file); err != nil {
		return models.ContentFile{}, fmt.Errorf("decode content response: %w", err)
	}
	if file.Type != "" && file.Type != "file" {
		return models.ContentFile{}, fmt.Errorf("%w: %s is a %s", ErrNotAFile, path, file.Type)
	}

	if file.Content == "" && file.Size > 0 && (file.Encoding == githubEncodingNil || file.Encoding == "") {
		raw, err := g.getRaw(ctx, endpoint)
		if err != nil {
			return models.ContentFile{}, err
		}
		file.Content = codec.ToTransportText(raw)
		file.Encoding = "base64"
	}

	return file, nil
}

func (g *githubContentBackend) getRaw(ctx context.Context, endpoint string) ([]byte, error) {
	g.logger.Debug().Str("func", "githubContentBackend.getRaw").Str("endpoint", endpoint).Msg("content above inline limit, fetching raw")

	resp, err := g.request(ctx).
		SetHeader("Accept", githubAcceptRaw).
		Get(endpoint)
	if err != nil {
		return nil, mapTransportError("get raw content request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}

// CreateOrUpdateFileContents implements [ContentBackend]. It issues
// PUT /repos/{owner}/{repo}/contents/{path} with {message, content, sha?,
// branch}.
func (g *githubContentBackend) CreateOrUpdateFileContents(ctx context.Context, req models.FileContentsRequest) (models.FileCommitResponse, error) {
	endpoint, err := g.contentsPath(req.Path)
	if err != nil {
		return models.FileCommitResponse{}, err
	}
	if req.Branch == "" {
		req.Branch = g.branch
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Put(endpoint)
	if err != nil {
		return models.FileCommitResponse{}, mapTransportError("put content request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.FileCommitResponse{}, err
	}

	return decodeCommitResponse(resp)
}

// DeleteFile implements [ContentBackend]. It issues
// DELETE /repos/{owner}/{repo}/contents/{path} with {message, sha, branch}.
func (g *githubContentBackend) DeleteFile(ctx context.Context, req models.DeleteFileRequest) (models.FileCommitResponse, error) {
	endpoint, err := g.contentsPath(req.Path)
	if err != nil {
		return models.FileCommitResponse{}, err
	}
	if req.Branch == "" {
		req.Branch = g.branch
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Delete(endpoint)
	if err != nil {
		return models.FileCommitResponse{}, mapTransportError("delete content request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.FileCommitResponse{}, err
	}

	return decodeCommitResponse(resp)
}

func (g *githubContentBackend) request(ctx context.Context) *resty.Request {
	req := g.client.R().SetContext(ctx)
	if g.branch != "" {
		req.SetQueryParam("ref", g.branch)
	}
	return req
}

func decodeCommitResponse(resp *resty.Response) (models.FileCommitResponse, error) {
	var out models.FileCommitResponse
	if len(bytes.TrimSpace(resp.Body())) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return models.FileCommitResponse{}, fmt.Errorf("decode commit response: %w", err)
	}
	return out, nil
}
