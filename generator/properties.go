package generator

import (
	"fmt"
	"time"
)

// MissingPropertyError reports a required property absent from the bag.
type MissingPropertyError struct {
	Key string
}

func (e *MissingPropertyError) Error() string {
	return fmt.Sprintf("required property %q is missing", e.Key)
}

// Properties is the typed form of the property bag supplied by the
// templating engine. All validation happens in ParseProperties so the
// generator itself never sees an absent or mistyped value.
type Properties struct {
	GKEZone            string
	CloudRunDeployName string
	ContainerTag       string
	Region             string
	ServiceAccountName string
	CustomCloudBuildSA string
	Timeout            string

	// GitReleaseTag is the Datashare release to check out. Empty means the
	// default branch, in which case no checkout step is emitted.
	GitReleaseTag string

	// UIDomainName, when non-empty, is exported to the service as
	// UI_BASE_URL after being qualified with the https scheme.
	UIDomainName string

	// UseRuntimeConfigWaiter gates the build on an external readiness
	// waiter; WaiterName must be set when it is true.
	UseRuntimeConfigWaiter bool
	WaiterName             string

	// DeployToGKE selects the cluster-backed deploy target instead of the
	// managed serverless platform.
	DeployToGKE bool
}

// ParseProperties converts a raw property bag into a validated Properties.
// Required keys must be present; absence fails fast with a
// MissingPropertyError rather than flowing empty strings into the document.
func ParseProperties(bag map[string]any) (*Properties, error) {
	p := &Properties{}

	var err error
	if p.GKEZone, err = requireString(bag, "gkeZone"); err != nil {
		return nil, err
	}
	if p.CloudRunDeployName, err = requireString(bag, "cloudRunDeployName"); err != nil {
		return nil, err
	}
	if p.ContainerTag, err = requireString(bag, "containerTag"); err != nil {
		return nil, err
	}
	if p.Region, err = requireString(bag, "region"); err != nil {
		return nil, err
	}
	if p.ServiceAccountName, err = requireString(bag, "serviceAccountName"); err != nil {
		return nil, err
	}
	if p.CustomCloudBuildSA, err = requireString(bag, "customCloudBuildSA"); err != nil {
		return nil, err
	}
	if p.Timeout, err = requireString(bag, "timeout"); err != nil {
		return nil, err
	}
	if _, err = time.ParseDuration(p.Timeout); err != nil {
		return nil, fmt.Errorf("property \"timeout\" %q is not a valid duration: %w", p.Timeout, err)
	}

	// The release tag key must be present, but a null or empty value is
	// legal and resolves to the default branch.
	release, ok := bag["datashareGitReleaseTag"]
	if !ok {
		return nil, &MissingPropertyError{Key: "datashareGitReleaseTag"}
	}
	if s, isString := release.(string); isString {
		p.GitReleaseTag = s
	} else if release != nil {
		return nil, fmt.Errorf("property \"datashareGitReleaseTag\" must be a string, got %T", release)
	}

	waiter, ok := bag["useRuntimeConfigWaiter"]
	if !ok {
		return nil, &MissingPropertyError{Key: "useRuntimeConfigWaiter"}
	}
	p.UseRuntimeConfigWaiter = truthy(waiter)
	if p.UseRuntimeConfigWaiter {
		if p.WaiterName, err = requireString(bag, "waiterName"); err != nil {
			return nil, err
		}
	}

	p.UIDomainName = optionalString(bag, "uiDomainName")
	p.DeployToGKE = truthy(bag["deployToGke"])

	return p, nil
}

func requireString(bag map[string]any, key string) (string, error) {
	value, ok := bag[key]
	if !ok || value == nil {
		return "", &MissingPropertyError{Key: key}
	}
	s, isString := value.(string)
	if !isString {
		return "", fmt.Errorf("property %q must be a string, got %T", key, value)
	}
	if s == "" {
		return "", &MissingPropertyError{Key: key}
	}
	return s, nil
}

func optionalString(bag map[string]any, key string) string {
	if s, ok := bag[key].(string); ok {
		return s
	}
	return ""
}

// truthy resolves the tri-state flags the templating engine passes through:
// absent, false and the literal string "false" all mean false.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != "" && v != "false"
	default:
		return true
	}
}
