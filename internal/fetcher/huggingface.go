package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/trustscore/core/engine"
	"github.com/huangsam/trustscore/internal/contract"
	"github.com/huangsam/trustscore/schema"
)

// Reference points for log-scaled Hugging Face signals.
const (
	hfLikesRef     = 1000
	hfDownloadsRef = 1_000_000
	hfParamsRef    = 70_000_000_000
	hfStorageRef   = 100 << 30
	hfFilesRef     = 100
	hfCardRef      = 10
)

// hfInfo is the subset of the model and dataset info payloads we read.
type hfInfo struct {
	ID           string         `json:"id"`
	Likes        int64          `json:"likes"`
	Downloads    int64          `json:"downloads"`
	LastModified time.Time      `json:"lastModified"`
	Tags         []string       `json:"tags"`
	CardData     map[string]any `json:"cardData"`
	Disabled     bool           `json:"disabled"`
	Siblings     []struct {
		Name string `json:"rfilename"`
	} `json:"siblings"`
	Safetensors *struct {
		Total int64 `json:"total"`
	} `json:"safetensors"`
	UsedStorage int64 `json:"usedStorage"`
}

// HuggingFaceProvider describes models and datasets through the Hugging Face hub API.
type HuggingFaceProvider struct {
	endpoint string
	client   *http.Client
	now      func() time.Time
}

var _ contract.ContextProvider = &HuggingFaceProvider{} // Compile-time check

// NewHuggingFaceProvider returns a provider for endpoint, or the public hub when empty.
func NewHuggingFaceProvider(endpoint string, timeout time.Duration) *HuggingFaceProvider {
	if endpoint == "" {
		endpoint = contract.DefaultHFEndpoint
	}
	return &HuggingFaceProvider{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: timeout},
		now:      time.Now,
	}
}

// Name implements contract.ContextProvider.
func (h *HuggingFaceProvider) Name() string { return "huggingface" }

// Supports implements contract.ContextProvider.
func (h *HuggingFaceProvider) Supports(target schema.Target) bool {
	return target.Kind == schema.HFModelSource || target.Kind == schema.HFDatasetSource
}

// Fetch implements contract.ContextProvider.
func (h *HuggingFaceProvider) Fetch(ctx context.Context, target schema.Target) (engine.Context, error) {
	info, err := h.info(ctx, target)
	if err != nil {
		return nil, err
	}

	isDataset := target.Kind == schema.HFDatasetSource
	files := make([]string, len(info.Siblings))
	for i, s := range info.Siblings {
		files[i] = strings.ToLower(s.Name)
	}
	hasReadme := slices.Contains(files, "readme.md")

	sizeComponents := map[string]any{
		"artifacts_norm": logNorm(float64(len(files)), hfFilesRef),
	}
	if info.Safetensors != nil && info.Safetensors.Total > 0 {
		sizeComponents["params_norm"] = logNorm(float64(info.Safetensors.Total), hfParamsRef)
	}
	if info.UsedStorage > 0 {
		sizeComponents["db_norm"] = logNorm(float64(info.UsedStorage), hfStorageRef)
	}

	out := engine.Context{
		"license": hfLicense(info),
		"ramp": map[string]any{
			"likes_norm":     logNorm(float64(info.Likes), hfLikesRef),
			"downloads_norm": logNorm(float64(info.Downloads), hfDownloadsRef),
			"recency_norm":   recencyNorm(info.LastModified, h.now()),
		},
		"availability": map[string]any{
			"has_code":    !isDataset && slices.ContainsFunc(files, isCodeFile),
			"has_dataset": isDataset || hfHasDatasetRef(info),
			"links_ok":    !info.Disabled,
		},
		"size_components": sizeComponents,
		"dataset_quality": map[string]any{
			"documentation": 0.5*boolNorm(hasReadme) + 0.5*logNorm(float64(len(info.CardData)), hfCardRef),
		},
	}
	if results, ok := info.CardData["model-index"]; ok && results != nil {
		out["requirements_score"] = 1.0
	}
	return out, nil
}

func (h *HuggingFaceProvider) info(ctx context.Context, target schema.Target) (*hfInfo, error) {
	kind := "models"
	if target.Kind == schema.HFDatasetSource {
		kind = "datasets"
	}
	endpoint, err := url.Parse(h.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid Hugging Face endpoint %q: %w", h.endpoint, err)
	}
	endpoint.Path = path.Join("/", endpoint.Path, "api", kind, target.RepoID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s info for %s: %w", kind, target.RepoID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("hugging face returned %s for %s: %s", resp.Status, target.RepoID, strings.TrimSpace(string(body)))
	}

	var info hfInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode %s info for %s: %w", kind, target.RepoID, err)
	}
	return &info, nil
}

// hfLicense prefers the model card and falls back to a license:<id> tag.
func hfLicense(info *hfInfo) string {
	if lic, ok := info.CardData["license"].(string); ok && lic != "" {
		return lic
	}
	for _, tag := range info.Tags {
		if lic, ok := strings.CutPrefix(tag, "license:"); ok {
			return lic
		}
	}
	return ""
}

func hfHasDatasetRef(info *hfInfo) bool {
	if _, ok := info.CardData["datasets"]; ok {
		return true
	}
	return slices.ContainsFunc(info.Tags, func(tag string) bool {
		return strings.HasPrefix(tag, "dataset:")
	})
}

func isCodeFile(name string) bool {
	switch path.Ext(name) {
	case ".py", ".ipynb", ".sh", ".go", ".js", ".ts":
		return true
	}
	return false
}
