// Package generator produces the Deployment Manager resource configuration
// that builds and deploys the Datashare API. The output is a pure function of
// the input properties: a create resource running the clone/checkout/build/
// deploy steps and a delete resource that removes the service on teardown.
package generator

import (
	"fmt"

	"github.com/illmade-knight/datashare-deploy/cloudbuild"
)

const (
	sourceRepo           = "https://github.com/GoogleCloudPlatform/datashare-toolkit.git"
	defaultReleaseBranch = "master"

	// Working directories inside the Cloud Build workspace.
	cloneDir   = "ds"
	toolkitDir = "ds/datashare-toolkit"

	gitBuilderImage    = "gcr.io/cloud-builders/git"
	gcloudBuilderImage = "gcr.io/cloud-builders/gcloud"
	cloudSDKImage      = "gcr.io/google.com/cloudsdktool/cloud-sdk"

	createResourceName = "ds-api-build"
	deleteResourceName = "delete-api"
	deleteTimeout      = "120s"

	gkeClusterName = "datashare"
	gkeNamespace   = "datashare-apis"
)

// Generate maps the validated properties to the two-resource document:
// the build-and-deploy resource first, then the teardown resource that
// depends on it.
func Generate(props *Properties) (*cloudbuild.Document, error) {
	release := props.GitReleaseTag
	if release == "" {
		release = defaultReleaseBranch
	}

	deploy, err := deployStep(props)
	if err != nil {
		return nil, err
	}

	// Steps are built in their final execution order: the checkout step
	// only exists when a specific release was requested.
	steps := make([]cloudbuild.Step, 0, 4)
	steps = append(steps, cloneStep())
	if release != defaultReleaseBranch {
		steps = append(steps, checkoutStep(release))
	}
	steps = append(steps, buildImageStep(props.ContainerTag))
	steps = append(steps, deploy)

	createMetadata := cloudbuild.Metadata{
		RuntimePolicy: []string{cloudbuild.PolicyUpdateAlways},
	}
	if props.UseRuntimeConfigWaiter {
		createMetadata.DependsOn = []string{props.WaiterName}
	}

	create := cloudbuild.Resource{
		Name:     createResourceName,
		Action:   cloudbuild.BuildCreateAction,
		Metadata: createMetadata,
		Properties: cloudbuild.BuildProperties{
			Steps:          steps,
			Timeout:        props.Timeout,
			ServiceAccount: props.CustomCloudBuildSA,
			Options:        cloudbuild.Options{Logging: cloudbuild.LoggingCloudOnly},
		},
	}

	return &cloudbuild.Document{
		Resources: []cloudbuild.Resource{create, deleteResource(props)},
	}, nil
}

func cloneStep() cloudbuild.Step {
	return cloudbuild.Step{
		Name: gitBuilderImage,
		Dir:  cloneDir,
		Args: []string{"clone", sourceRepo},
	}
}

func checkoutStep(release string) cloudbuild.Step {
	return cloudbuild.Step{
		Name: gitBuilderImage,
		Dir:  toolkitDir,
		Args: []string{"checkout", release},
	}
}

// buildImageStep submits the API image build only when the image is not
// already in the registry. The existence check is an opaque shell conditional
// evaluated inside the step, not by this generator.
func buildImageStep(containerTag string) cloudbuild.Step {
	return cloudbuild.Step{
		Name:       cloudSDKImage,
		Dir:        toolkitDir,
		Entrypoint: "bash",
		Args: []string{"-c",
			"if ! gcloud container images describe gcr.io/$PROJECT_ID/ds-api:dev; then " +
				"gcloud builds submit . --config=api/v1/cloudbuild.yaml --substitutions=TAG_NAME=" + containerTag +
				"; else exit 0; fi",
		},
	}
}

// deployStep builds the complete gcloud argument list for the chosen target
// platform in one pass. The two branches are mutually exclusive: managed
// Cloud Run or Cloud Run on the fixed datashare GKE cluster.
func deployStep(props *Properties) (cloudbuild.Step, error) {
	image := fmt.Sprintf("--image=gcr.io/$PROJECT_ID/%s:%s", props.CloudRunDeployName, props.ContainerTag)

	var args []string
	if props.DeployToGKE {
		args = []string{
			"alpha", "run", "deploy", props.CloudRunDeployName,
			"--cluster=" + gkeClusterName,
			"--cluster-location=" + props.GKEZone,
			"--namespace=" + gkeNamespace,
			"--min-instances=1",
			image,
			"--platform=gke",
			"--service-account=" + props.ServiceAccountName,
		}
	} else {
		args = []string{
			"run", "deploy", props.CloudRunDeployName,
			image,
			"--region=" + props.Region,
			"--allow-unauthenticated",
			"--platform=managed",
			fmt.Sprintf("--service-account=%s@$PROJECT_ID.iam.gserviceaccount.com", props.ServiceAccountName),
		}
	}

	envFlag := "--set-env-vars=PROJECT_ID=$PROJECT_ID"
	if props.UIDomainName != "" {
		baseURL, err := FormatDomain(props.UIDomainName)
		if err != nil {
			return cloudbuild.Step{}, err
		}
		envFlag = fmt.Sprintf("--set-env-vars=UI_BASE_URL=%s,PROJECT_ID=$PROJECT_ID", baseURL)
	}

	return cloudbuild.Step{
		Name:       gcloudBuilderImage,
		Dir:        toolkitDir,
		Entrypoint: "gcloud",
		Args:       append(args, envFlag),
	}, nil
}

// deleteResource runs when the deployment is deleted and removes the Cloud
// Run service. Deletion is best effort: the command exits zero whether or
// not the service still exists, so teardown never fails on a missing target.
func deleteResource(props *Properties) cloudbuild.Resource {
	var command string
	if props.DeployToGKE {
		command = fmt.Sprintf(
			"gcloud run services delete %s --platform=gke --cluster=%s --cluster-location=%s --quiet || exit 0",
			props.CloudRunDeployName, gkeClusterName, props.Region)
	} else {
		command = fmt.Sprintf(
			"gcloud run services delete %s --platform=managed --region=%s --quiet || exit 0",
			props.CloudRunDeployName, props.Region)
	}

	return cloudbuild.Resource{
		Name:   deleteResourceName,
		Action: cloudbuild.BuildCreateAction,
		Metadata: cloudbuild.Metadata{
			RuntimePolicy: []string{cloudbuild.PolicyDelete},
			DependsOn:     []string{createResourceName},
		},
		Properties: cloudbuild.BuildProperties{
			Steps: []cloudbuild.Step{
				{
					Name:       cloudSDKImage,
					Entrypoint: "/bin/bash",
					Args:       []string{"-c", command},
				},
			},
			Timeout:        deleteTimeout,
			ServiceAccount: props.CustomCloudBuildSA,
			Options:        cloudbuild.Options{Logging: cloudbuild.LoggingCloudOnly},
		},
	}
}
