package render

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/devantler-tech/kubedrift/pkg/manifest"
	helmv4action "helm.sh/helm/v4/pkg/action"
	helmv4loader "helm.sh/helm/v4/pkg/chart/loader"
	chartv2 "helm.sh/helm/v4/pkg/chart/v2"
	helmv4cli "helm.sh/helm/v4/pkg/cli"
	v1 "helm.sh/helm/v4/pkg/release/v1"
	helmv4strvals "helm.sh/helm/v4/pkg/strvals"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"sigs.k8s.io/yaml"
)

// HelmOptions carries the release settings used when rendering chart
// sources.
type HelmOptions struct {
	// ReleaseName is the release name templates see in .Release.Name.
	ReleaseName string

	// Namespace is the release namespace templates see in .Release.Namespace.
	Namespace string

	// ValuesFiles are merged over the chart's default values in order.
	ValuesFiles []string

	// SetValues are strvals expressions ("a.b=c") merged last.
	SetValues []string
}

// HelmRenderer renders a chart directory client-side, without contacting a
// cluster, and returns the resulting records.
type HelmRenderer struct {
	Options HelmOptions
}

// Render implements Renderer.
func (r *HelmRenderer) Render(
	ctx context.Context,
	path string,
) ([]*unstructured.Unstructured, error) {
	settings := helmv4cli.New()

	actionConfig := new(helmv4action.Configuration)

	err := actionConfig.Init(
		settings.RESTClientGetter(),
		settings.Namespace(),
		os.Getenv("HELM_DRIVER"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize helm action config: %w", err)
	}

	client := helmv4action.NewInstall(actionConfig)
	client.ReleaseName = r.Options.ReleaseName
	client.Namespace = r.Options.Namespace
	client.DryRunStrategy = helmv4action.DryRunClient

	chart, err := loadChart(path)
	if err != nil {
		return nil, err
	}

	values, err := r.mergeValues()
	if err != nil {
		return nil, err
	}

	var releaser interface{}

	releaser, err = client.RunWithContext(ctx, chart, values)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart %s: %w", path, err)
	}

	release, ok := releaser.(*v1.Release)
	if !ok {
		return nil, fmt.Errorf("unexpected release type: %T", releaser)
	}

	return decodeRelease(release, path)
}

func loadChart(path string) (*chartv2.Chart, error) {
	chartInterface, err := helmv4loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart %s: %w", path, err)
	}

	chart, ok := chartInterface.(*chartv2.Chart)
	if !ok {
		return nil, fmt.Errorf("unexpected chart type: %T", chartInterface)
	}

	return chart, nil
}

// mergeValues layers values files over an empty base and applies strvals
// expressions last, mirroring helm's own precedence.
func (r *HelmRenderer) mergeValues() (map[string]any, error) {
	base := map[string]any{}

	for _, filePath := range r.Options.ValuesFiles {
		fileBytes, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read values file %s: %w", filePath, err)
		}

		var parsed map[string]any

		err = yaml.Unmarshal(fileBytes, &parsed)
		if err != nil {
			return nil, fmt.Errorf("failed to parse values file %s: %w", filePath, err)
		}

		if parsed != nil {
			mergeMapsInto(base, parsed)
		}
	}

	for _, expression := range r.Options.SetValues {
		err := helmv4strvals.ParseInto(expression, base)
		if err != nil {
			return nil, fmt.Errorf("failed to parse set value %s: %w", expression, err)
		}
	}

	return base, nil
}

func mergeMapsInto(dest, src map[string]any) {
	for key, srcVal := range src {
		if srcMap, ok := srcVal.(map[string]any); ok {
			if destVal, exists := dest[key]; exists {
				if destMap, ok := destVal.(map[string]any); ok {
					mergeMapsInto(destMap, srcMap)

					continue
				}
			}
		}

		dest[key] = srcVal
	}
}

// decodeRelease turns a rendered release into records, manifest first and
// hooks after, the order helm template prints them.
func decodeRelease(release *v1.Release, path string) ([]*unstructured.Unstructured, error) {
	var rendered bytes.Buffer

	rendered.WriteString(release.Manifest)

	for _, hook := range release.Hooks {
		rendered.WriteString("\n---\n")
		rendered.WriteString(hook.Manifest)
	}

	records, err := manifest.Decode(&rendered)
	if err != nil {
		return nil, fmt.Errorf("failed to decode rendered chart %s: %w", path, err)
	}

	return manifest.Flatten(records), nil
}
