package configmanager

import (
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/devantler-tech/kubedrift/pkg/apis/drift/v1alpha1"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// flagNameOverrides maps config paths whose leaf name alone would be
// ambiguous or misleading on the command line.
var flagNameOverrides = map[string]string{
	"spec.helm.releaseName": "helm-release-name",
	"spec.helm.namespace":   "helm-namespace",
	"spec.helm.valuesFiles": "helm-values",
	"spec.helm.setValues":   "helm-set",
}

// flagShorthands maps flag names to their single-letter shorthand.
var flagShorthands = map[string]string{
	"kubeconfig": "k",
	"context":    "c",
	"timeout":    "t",
}

// InitializeViper creates a Viper instance configured for kubedrift.yaml
// config files and KUBEDRIFT_ environment variables.
func InitializeViper() *viper.Viper {
	viperInstance := viper.New()

	viperInstance.SetConfigName("kubedrift")
	viperInstance.SetConfigType("yaml")
	viperInstance.AddConfigPath(".")

	viperInstance.SetEnvPrefix("KUBEDRIFT")
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viperInstance.AutomaticEnv()

	return viperInstance
}

// registerDefaults seeds Viper with every selector's default value. Known
// keys make environment variables resolvable during unmarshalling, and
// explicit zero values in config files survive instead of being re-defaulted.
func (m *ConfigManager) registerDefaults() {
	for _, selector := range m.fieldSelectors {
		fieldPtr := selector.Selector(m.Config)
		if fieldPtr == nil {
			continue
		}

		path := m.fieldConfigPath(fieldPtr)
		if path == "" {
			continue
		}

		m.Viper.SetDefault(path, viperDefault(fieldPtr, selector.DefaultValue))
	}
}

// viperDefault normalizes a selector default for Viper. Durations are stored
// as strings so they merge cleanly with config file values, and nil defaults
// become typed zero values so the key is still known for environment lookups.
func viperDefault(fieldPtr, value any) any {
	if duration, ok := value.(metav1.Duration); ok {
		return duration.Duration.String()
	}

	if value != nil {
		return value
	}

	switch fieldPtr.(type) {
	case *string:
		return ""
	case *bool:
		return false
	case *metav1.Duration:
		return "0s"
	case *[]string:
		return []string{}
	default:
		return nil
	}
}

// AddFlagsFromFields registers a flag on the command for every field selector.
// Flag names are derived from the selected field's position in the config
// schema, so renaming a config field renames its flag.
func (m *ConfigManager) AddFlagsFromFields(cmd *cobra.Command) {
	flags := cmd.Flags()

	for _, selector := range m.fieldSelectors {
		fieldPtr := selector.Selector(m.Config)
		if fieldPtr == nil {
			continue
		}

		flagName := m.GenerateFlagName(fieldPtr)
		if flagName == "" || flags.Lookup(flagName) != nil {
			continue
		}

		bindFlag(flags, fieldPtr, flagName, m.GenerateShorthand(flagName), selector)
	}
}

func bindFlag(
	flags *pflag.FlagSet,
	fieldPtr any,
	name string,
	shorthand string,
	selector FieldSelector[v1alpha1.Drift],
) {
	switch target := fieldPtr.(type) {
	case pflag.Value:
		flags.VarP(target, name, shorthand, selector.Description)
	case *string:
		flags.StringVarP(target, name, shorthand, defaultString(selector.DefaultValue), selector.Description)
	case *bool:
		flags.BoolVarP(target, name, shorthand, defaultBool(selector.DefaultValue), selector.Description)
	case *metav1.Duration:
		flags.DurationVarP(
			&target.Duration, name, shorthand, defaultDuration(selector.DefaultValue), selector.Description,
		)
	case *[]string:
		flags.StringSliceVarP(
			target, name, shorthand, defaultStringSlice(selector.DefaultValue), selector.Description,
		)
	}
}

// GenerateFlagName returns the command-line flag name for a config field.
// The name is the field's kebab-cased leaf name unless an override applies.
func (m *ConfigManager) GenerateFlagName(fieldPtr any) string {
	path := m.fieldConfigPath(fieldPtr)
	if path == "" {
		return ""
	}

	if override, ok := flagNameOverrides[path]; ok {
		return override
	}

	segments := strings.Split(path, ".")

	return kebabCase(segments[len(segments)-1])
}

// GenerateShorthand returns the single-letter shorthand for a flag name, or
// an empty string when the flag has none.
func (m *ConfigManager) GenerateShorthand(flagName string) string {
	return flagShorthands[flagName]
}

// fieldConfigPath locates the field pointed to by fieldPtr within the config
// struct and returns its dotted path, such as "spec.connection.kubeconfig".
func (m *ConfigManager) fieldConfigPath(fieldPtr any) string {
	target := reflect.ValueOf(fieldPtr)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return ""
	}

	segments := findFieldPath(reflect.ValueOf(m.Config).Elem(), target.Pointer(), target.Elem().Type())

	return strings.Join(segments, ".")
}

// findFieldPath walks structVal depth-first looking for the field at addr.
// The address alone is ambiguous because a struct shares its address with its
// first field, so the field type must match too. Embedded structs contribute
// no path segment, matching their inline serialization.
func findFieldPath(structVal reflect.Value, addr uintptr, fieldType reflect.Type) []string {
	for index := 0; index < structVal.NumField(); index++ {
		field := structVal.Field(index)
		if !field.CanAddr() {
			continue
		}

		structField := structVal.Type().Field(index)

		if field.Addr().Pointer() == addr && field.Type() == fieldType {
			if structField.Anonymous {
				return nil
			}

			return []string{fieldPathName(structField)}
		}

		if field.Kind() != reflect.Struct {
			continue
		}

		nested := findFieldPath(field, addr, fieldType)
		if nested == nil {
			continue
		}

		if structField.Anonymous {
			return nested
		}

		return append([]string{fieldPathName(structField)}, nested...)
	}

	return nil
}

// fieldPathName returns a struct field's serialized name, preferring the json
// tag over the Go field name.
func fieldPathName(structField reflect.StructField) string {
	tag := structField.Tag.Get("json")
	if tag != "" {
		name, _, _ := strings.Cut(tag, ",")
		if name != "" {
			return name
		}
	}

	return strings.ToLower(structField.Name)
}

// kebabCase converts a camelCase field name to its kebab-case flag form.
func kebabCase(name string) string {
	var builder strings.Builder

	for _, char := range name {
		if unicode.IsUpper(char) {
			builder.WriteByte('-')
			builder.WriteRune(unicode.ToLower(char))

			continue
		}

		builder.WriteRune(char)
	}

	return builder.String()
}

func defaultString(value any) string {
	text, ok := value.(string)
	if !ok {
		return ""
	}

	return text
}

func defaultBool(value any) bool {
	enabled, ok := value.(bool)
	if !ok {
		return false
	}

	return enabled
}

func defaultDuration(value any) time.Duration {
	duration, ok := value.(metav1.Duration)
	if !ok {
		return 0
	}

	return duration.Duration
}

func defaultStringSlice(value any) []string {
	values, ok := value.([]string)
	if !ok {
		return nil
	}

	return values
}
