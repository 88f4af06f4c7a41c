package deploy

import (
	"github.com/imamik/dcdeploy/internal/provisioning"
)

const s3Phase = "s3"

// S3Phase registers the external S3 endpoint once all zones exist.
type S3Phase struct{}

// NewS3Phase creates a new S3 phase.
func NewS3Phase() *S3Phase {
	return &S3Phase{}
}

// Name implements the provisioning.Phase interface.
func (p *S3Phase) Name() string {
	return s3Phase
}

// Provision implements the provisioning.Phase interface.
func (p *S3Phase) Provision(ctx *provisioning.Context) error {
	s3 := ctx.Config.S3
	if s3 == nil {
		return nil
	}

	provisioning.LogResourceCreating(ctx.Observer, s3Phase, provisioning.ResourceS3, s3.Bucket)
	resp, err := ctx.Client.AddS3(ctx, s3Request(s3))
	if err != nil {
		return fail(ctx, s3Phase, provisioning.ResourceS3, s3.Bucket, err)
	}
	recordOptional(ctx, s3Phase, provisioning.ResourceS3, s3.Bucket, resp.ID)
	return nil
}
