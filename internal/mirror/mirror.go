// Package mirror 把本地导出件镜像到代码托管 API（创建或更新仓库文件）。
// 镜像只是兜底备份：本地保存永远是数据源，这里的任何失败调用方都只告警。
package mirror

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/wine-cx/wine-pricing-system/internal/config"
)

// Client 镜像客户端
type Client struct {
	cfg  config.MirrorConfig
	http *http.Client
}

// NewClient 创建镜像客户端
func NewClient(cfg config.MirrorConfig) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// Enabled 是否配置齐全可用
func (c *Client) Enabled() bool {
	return c.cfg.Enabled && c.cfg.Repo != "" && c.cfg.Token != ""
}

func (c *Client) contentsURL() string {
	return fmt.Sprintf("%s/repos/%s/contents/%s",
		c.cfg.APIBase, c.cfg.Repo, url.PathEscape(c.cfg.Path))
}

// currentSHA 读远端文件现有版本号；文件不存在返回空串（走创建而不是更新）
func (c *Client) currentSHA() (string, error) {
	req, err := http.NewRequest(http.MethodGet, c.contentsURL()+"?ref="+url.QueryEscape(c.cfg.Branch), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("读取远端文件版本失败: HTTP %d", resp.StatusCode)
	}

	var body struct {
		SHA string `json:"sha"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	return body.SHA, nil
}

type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch,omitempty"`
	SHA     string `json:"sha,omitempty"`
}

// Push 创建或更新远端文件。先取现有版本号决定创建还是更新。
func (c *Client) Push(data []byte, message string) error {
	sha, err := c.currentSHA()
	if err != nil {
		return err
	}

	payload, err := json.Marshal(putRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(data),
		Branch:  c.cfg.Branch,
		SHA:     sha,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPut, c.contentsURL(), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("镜像上传失败: HTTP %d: %s", resp.StatusCode, body)
	}
	return nil
}
