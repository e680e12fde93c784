// Package diffview renders drift events for terminal consumption.
//
// Three modes are supported: summary mode prints one line per change with a
// unified diff for changed records, list mode prints only the names of
// changed objects, and quiet mode consumes the first event without output so
// callers can derive an exit status as cheaply as possible.
package diffview

import (
	"fmt"
	"io"
	"strings"

	"github.com/devantler-tech/kubedrift/pkg/manifest"
	"github.com/devantler-tech/kubedrift/pkg/svc/diff"
	fcolor "github.com/fatih/color"
	"github.com/mitchellh/go-wordwrap"
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/term"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"sigs.k8s.io/yaml"
)

// Mode selects how much of each change is rendered.
type Mode int

const (
	// ModeSummary prints a one-line summary per change and a unified diff
	// for changed records.
	ModeSummary Mode = iota

	// ModeList prints only the names of changed objects.
	ModeList

	// ModeQuiet stops at the first change without printing anything.
	ModeQuiet
)

// diffContextLines is the number of unchanged lines shown around each hunk.
const diffContextLines = 3

var (
	addColor    = fcolor.New(fcolor.FgGreen)
	deleteColor = fcolor.New(fcolor.FgRed)
	changeColor = fcolor.New(fcolor.FgYellow)
	hunkColor   = fcolor.New(fcolor.FgCyan)
)

// View renders the changes between a cluster hierarchy and a local hierarchy.
type View struct {
	cluster *manifest.Hierarchy
	local   *manifest.Hierarchy
	mode    Mode
	writer  io.Writer
	width   uint
}

// New creates a view over the two hierarchies. Output wraps to the terminal
// width when the writer is a terminal.
func New(cluster, local *manifest.Hierarchy, mode Mode, writer io.Writer) *View {
	return &View{
		cluster: cluster,
		local:   local,
		mode:    mode,
		writer:  writer,
		width:   terminalWidth(writer),
	}
}

// Render walks the change stream and writes the report according to the
// configured mode. It returns true when at least one difference exists,
// which holds in quiet mode too even though nothing is written.
func (v *View) Render() (bool, error) {
	stream := diff.Calculate(v.cluster, v.local)
	found := false

	for {
		event, ok := stream.Next()
		if !ok {
			break
		}

		found = true

		if v.mode == ModeQuiet {
			break
		}

		var err error
		if v.mode == ModeList {
			v.renderName(event)
		} else {
			err = v.renderChange(event)
		}

		if err != nil {
			return found, err
		}
	}

	return found, nil
}

// renderName prints the event subject, colored by operation.
func (v *View) renderName(event diff.Event) {
	v.println(colorFor(event.Op), event.String())
}

// renderChange prints the summary line for the event, followed by a unified
// diff of the two record bodies for changed records.
func (v *View) renderChange(event diff.Event) error {
	switch event.Op {
	case diff.OpAddNamespace:
		v.println(addColor, fmt.Sprintf(
			"Added namespace %s with %d objects",
			event.Namespace, v.bucketLen(v.local, event.Namespace),
		))
	case diff.OpDeleteNamespace:
		v.println(deleteColor, fmt.Sprintf(
			"Deleted namespace %s with %d objects",
			event.Namespace, v.bucketLen(v.cluster, event.Namespace),
		))
	case diff.OpAddRecord:
		v.println(addColor, fmt.Sprintf("Added %s %s/%s", event.Kind, event.Namespace, event.Name))
	case diff.OpDeleteRecord:
		v.println(
			deleteColor,
			fmt.Sprintf("Deleted %s %s/%s", event.Kind, event.Namespace, event.Name),
		)
	case diff.OpChangeRecord:
		v.println(
			changeColor,
			fmt.Sprintf("Changed %s %s/%s", event.Kind, event.Namespace, event.Name),
		)

		return v.renderRecordDiff(event)
	}

	return nil
}

// renderRecordDiff writes a unified diff between the cluster body and the
// local body of the changed record, cluster side first.
func (v *View) renderRecordDiff(event diff.Event) error {
	key := manifest.RecordKey{Kind: event.Kind, Name: event.Name}

	clusterRecord, localRecord := v.recordPair(event.Namespace, key)
	if clusterRecord == nil || localRecord == nil {
		return nil
	}

	clusterYAML, err := yaml.Marshal(clusterRecord.Object)
	if err != nil {
		return fmt.Errorf("failed to marshal cluster record %s: %w", key, err)
	}

	localYAML, err := yaml.Marshal(localRecord.Object)
	if err != nil {
		return fmt.Errorf("failed to marshal local record %s: %w", key, err)
	}

	subject := event.Namespace + "/" + event.Name

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(strings.TrimSuffix(string(clusterYAML), "\n")),
		B:        difflib.SplitLines(strings.TrimSuffix(string(localYAML), "\n")),
		FromFile: subject + " CLUSTER",
		ToFile:   subject + " LOCAL",
		Context:  diffContextLines,
	})
	if err != nil {
		return fmt.Errorf("failed to build unified diff for %s: %w", key, err)
	}

	v.printDiff(text)

	return nil
}

// printDiff colors the unified diff line by line, hunk headers cyan, added
// lines green, removed lines red.
func (v *View) printDiff(text string) {
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "@@"):
			_, _ = hunkColor.Fprintln(v.writer, line)
		case strings.HasPrefix(line, "+"):
			_, _ = addColor.Fprintln(v.writer, line)
		case strings.HasPrefix(line, "-"):
			_, _ = deleteColor.Fprintln(v.writer, line)
		default:
			fmt.Fprintln(v.writer, line)
		}
	}
}

// println writes a single summary line, wrapped to the terminal width when
// one is known.
func (v *View) println(lineColor *fcolor.Color, line string) {
	if v.width > 0 {
		line = wordwrap.WrapString(line, v.width)
	}

	_, _ = lineColor.Fprintln(v.writer, line)
}

func (v *View) bucketLen(hierarchy *manifest.Hierarchy, namespace string) int {
	bucket, ok := hierarchy.Bucket(namespace)
	if !ok {
		return 0
	}

	return bucket.Len()
}

func (v *View) recordPair(
	namespace string,
	key manifest.RecordKey,
) (*unstructured.Unstructured, *unstructured.Unstructured) {
	clusterBucket, ok := v.cluster.Bucket(namespace)
	if !ok {
		return nil, nil
	}

	localBucket, ok := v.local.Bucket(namespace)
	if !ok {
		return nil, nil
	}

	clusterRecord, _ := clusterBucket.Get(key)
	localRecord, _ := localBucket.Get(key)

	return clusterRecord, localRecord
}

func colorFor(op diff.Op) *fcolor.Color {
	switch op {
	case diff.OpAddNamespace, diff.OpAddRecord:
		return addColor
	case diff.OpDeleteNamespace, diff.OpDeleteRecord:
		return deleteColor
	default:
		return changeColor
	}
}

// terminalWidth returns the column width of the writer when it is a
// terminal, and 0 otherwise.
func terminalWidth(writer io.Writer) uint {
	type fdWriter interface{ Fd() uintptr }

	file, ok := writer.(fdWriter)
	if !ok {
		return 0
	}

	fd := int(file.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}

	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return 0
	}

	return uint(width)
}
