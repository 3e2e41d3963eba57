// Package cloudbuild models the Deployment Manager resource document that
// wraps a Cloud Build invocation. Field names and nesting are part of the
// external contract consumed by Deployment Manager and must not change.
package cloudbuild

// BuildCreateAction is the Deployment Manager action that submits a build.
const BuildCreateAction = "gcp-types/cloudbuild-v1:cloudbuild.projects.builds.create"

// Runtime policies recognised by Deployment Manager for action resources.
const (
	PolicyUpdateAlways = "UPDATE_ALWAYS"
	PolicyDelete       = "DELETE"
)

// LoggingCloudOnly routes build logs to Cloud Logging without a GCS bucket,
// which is required when the build runs as a user-specified service account.
const LoggingCloudOnly = "CLOUD_LOGGING_ONLY"

// Step is a single Cloud Build step. Steps execute in slice order.
type Step struct {
	Name       string   `yaml:"name" json:"name"`
	Dir        string   `yaml:"dir,omitempty" json:"dir,omitempty"`
	Entrypoint string   `yaml:"entrypoint,omitempty" json:"entrypoint,omitempty"`
	Args       []string `yaml:"args,omitempty" json:"args,omitempty"`
}

// Metadata carries the Deployment Manager scheduling hints for a resource.
type Metadata struct {
	RuntimePolicy []string `yaml:"runtimePolicy" json:"runtimePolicy"`
	DependsOn     []string `yaml:"dependsOn,omitempty" json:"dependsOn,omitempty"`
}

// Options holds the build-level options passed through to Cloud Build.
type Options struct {
	Logging string `yaml:"logging" json:"logging"`
}

// BuildProperties is the payload of a build-create action: the ordered steps
// plus the build-wide timeout, service account and options.
type BuildProperties struct {
	Steps          []Step  `yaml:"steps" json:"steps"`
	Timeout        string  `yaml:"timeout" json:"timeout"`
	ServiceAccount string  `yaml:"serviceAccount" json:"serviceAccount"`
	Options        Options `yaml:"options" json:"options"`
}

// Resource is one Deployment Manager resource entry.
type Resource struct {
	Name       string          `yaml:"name" json:"name"`
	Action     string          `yaml:"action" json:"action"`
	Metadata   Metadata        `yaml:"metadata" json:"metadata"`
	Properties BuildProperties `yaml:"properties" json:"properties"`
}

// Document is the full resource configuration returned to Deployment Manager.
type Document struct {
	Resources []Resource `yaml:"resources" json:"resources"`
}
