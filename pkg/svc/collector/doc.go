// Package collector reads observed state from a Kubernetes cluster for
// drift comparison.
//
// Two collection modes exist. Reference mode fetches the live counterpart of
// each desired record, in desired order, skipping records the cluster does
// not have. All-resources mode lists every listable object the cluster
// serves, so objects no desired record references still surface as
// deletions.
//
// Collected records are rewritten into their comparison form before they are
// returned: when last-applied comparison is selected, a record is replaced
// by its parsed last-applied-configuration annotation, and any record served
// live has server-populated noise fields removed.
package collector
