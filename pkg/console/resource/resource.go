package resource

import (
	"strings"

	"github.com/opst/cloudconsole/pkg/api/types/deployments"
	"github.com/opst/cloudconsole/pkg/api/types/status"
	"github.com/opst/cloudconsole/pkg/api/types/vms"
)

// Kind of resources. It tells which variant a Resource carries.
type Kind string

const (
	KindVM         Kind = "vm"
	KindVMv1       Kind = "vmv1"
	KindDeployment Kind = "deployment"
)

// Resource is one of VM, VMv1 or Deployment, tagged with its Kind.
//
// Exactly one of the variant fields matching Kind is non-nil.
type Resource struct {
	Kind       Kind                    `json:"kind"`
	VM         *vms.VM                 `json:"vm,omitempty"`
	VMv1       *vms.VMv1               `json:"vmv1,omitempty"`
	Deployment *deployments.Deployment `json:"deployment,omitempty"`
}

// IsZero reports whether r carries nothing.
func (r Resource) IsZero() bool {
	switch r.Kind {
	case KindVM:
		return r.VM == nil
	case KindVMv1:
		return r.VMv1 == nil
	case KindDeployment:
		return r.Deployment == nil
	default:
		return true
	}
}

func (r Resource) ID() string {
	switch {
	case r.Kind == KindVM && r.VM != nil:
		return r.VM.ID
	case r.Kind == KindVMv1 && r.VMv1 != nil:
		return r.VMv1.ID
	case r.Kind == KindDeployment && r.Deployment != nil:
		return r.Deployment.ID
	default:
		return ""
	}
}

func (r Resource) Name() string {
	switch {
	case r.Kind == KindVM && r.VM != nil:
		return r.VM.Name
	case r.Kind == KindVMv1 && r.VMv1 != nil:
		return r.VMv1.Name
	case r.Kind == KindDeployment && r.Deployment != nil:
		return r.Deployment.Name
	default:
		return ""
	}
}

func (r Resource) Status() status.Status {
	switch {
	case r.Kind == KindVM && r.VM != nil:
		return r.VM.Status
	case r.Kind == KindVMv1 && r.VMv1 != nil:
		return r.VMv1.Status
	case r.Kind == KindDeployment && r.Deployment != nil:
		return r.Deployment.Status
	default:
		return status.Unknown
	}
}

func (r Resource) Zone() string {
	switch {
	case r.Kind == KindVM && r.VM != nil:
		return r.VM.Zone
	case r.Kind == KindVMv1 && r.VMv1 != nil:
		return r.VMv1.Zone
	case r.Kind == KindDeployment && r.Deployment != nil:
		return r.Deployment.Zone
	default:
		return ""
	}
}

func (r Resource) Teams() []string {
	switch {
	case r.Kind == KindVM && r.VM != nil:
		return r.VM.Teams
	case r.Kind == KindVMv1 && r.VMv1 != nil:
		return r.VMv1.Teams
	case r.Kind == KindDeployment && r.Deployment != nil:
		return r.Deployment.Teams
	default:
		return nil
	}
}

func (r Resource) OwnerID() string {
	switch {
	case r.Kind == KindVM && r.VM != nil:
		return r.VM.OwnerID
	case r.Kind == KindVMv1 && r.VMv1 != nil:
		return r.VMv1.OwnerID
	case r.Kind == KindDeployment && r.Deployment != nil:
		return r.Deployment.OwnerID
	default:
		return ""
	}
}

// FromVMs tags each VM as KindVM, keeping order. nil gives nil.
func FromVMs(items []vms.VM) []Resource {
	if items == nil {
		return nil
	}
	ret := make([]Resource, 0, len(items))
	for i := range items {
		vm := items[i]
		ret = append(ret, Resource{Kind: KindVM, VM: &vm})
	}
	return ret
}

// FromVMsV1 tags each VMv1 as KindVMv1, keeping order. nil gives nil.
func FromVMsV1(items []vms.VMv1) []Resource {
	if items == nil {
		return nil
	}
	ret := make([]Resource, 0, len(items))
	for i := range items {
		vm := items[i]
		ret = append(ret, Resource{Kind: KindVMv1, VMv1: &vm})
	}
	return ret
}

// FromDeployments tags each Deployment as KindDeployment, keeping order. nil gives nil.
func FromDeployments(items []deployments.Deployment) []Resource {
	if items == nil {
		return nil
	}
	ret := make([]Resource, 0, len(items))
	for i := range items {
		d := items[i]
		ret = append(ret, Resource{Kind: KindDeployment, Deployment: &d})
	}
	return ret
}

// Merge batches into one list.
//
// Batches are concatenated in the given order, and the order in each batch is kept.
// nil batches and zero Resources are skipped.
func Merge(batches ...[]Resource) []Resource {
	size := 0
	for _, b := range batches {
		size += len(b)
	}

	ret := make([]Resource, 0, size)
	for _, b := range batches {
		for _, r := range b {
			if r.IsZero() {
				continue
			}
			ret = append(ret, r)
		}
	}
	return ret
}

// Filter items whose name contains text, case-insensitively.
//
// When text is empty, items is returned as it is. Otherwise a new slice is returned
// keeping the order. items is never modified.
func Filter[T any](items []T, text string, nameOf func(T) string) []T {
	if text == "" {
		return items
	}
	needle := strings.ToLower(text)

	ret := make([]T, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(nameOf(item)), needle) {
			ret = append(ret, item)
		}
	}
	return ret
}

// NameOf is Resource.Name as a function, to be passed to Filter.
func NameOf(r Resource) string {
	return r.Name()
}
