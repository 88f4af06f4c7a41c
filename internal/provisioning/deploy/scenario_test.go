package deploy_test

import (
	"context"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/imamik/dcdeploy/internal/config"
	"github.com/imamik/dcdeploy/internal/platform/cloudapi"
	"github.com/imamik/dcdeploy/internal/platform/cloudapi/fakes"
	"github.com/imamik/dcdeploy/internal/provisioning"
	"github.com/imamik/dcdeploy/internal/provisioning/deploy"
	"github.com/imamik/dcdeploy/internal/provisioning/destroy"
	"github.com/imamik/dcdeploy/internal/state"
	dctest "github.com/imamik/dcdeploy/internal/testing"
)

// newScenarioContext mirrors dctest.NewContext for Ginkgo, which has no *testing.T.
func newScenarioContext(cfg *config.Config, client cloudapi.Client) (*provisioning.Context, *dctest.RecordingObserver) {
	obs := dctest.NewRecordingObserver()
	ctx := provisioning.NewContext(context.Background(), cfg, client)
	ctx.Observer = obs
	ctx.Timeouts = dctest.FastTimeouts()
	ctx.Sleep = func(time.Duration) {}
	return ctx, obs
}

var _ = Describe("Data center deployment", func() {
	var (
		cloud *fakes.Cloud
		cfg   *config.Config
		store *state.FileStore
	)

	BeforeEach(func() {
		cloud = fakes.New()
		store = state.NewFileStore(filepath.Join(GinkgoT().TempDir(), "state"))
		cfg = dctest.NewTopologyBuilder().
			WithZone(dctest.BasicZone("zone1")).
			WithZone(dctest.AdvancedZone("zone2")).
			WithGlobalConfig("expunge.delay", "60").
			Build()
	})

	Context("when every resource is created", func() {
		It("persists a ledger that removes everything in reverse order", func() {
			By("deploying the topology")
			ctx, _ := newScenarioContext(cfg, cloud)
			out, err := deploy.NewProvisioner(
				deploy.WithStore(store),
				deploy.WithZoneSuffix(func() string { return "abc123" }),
			).Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Location).To(BeAnExistingFile())
			Expect(out.Zones).To(HaveLen(2))

			By("loading the persisted ledger")
			doc, err := store.Load(context.Background(), out.Location)
			Expect(err).NotTo(HaveOccurred())
			Expect(doc.RunID).To(Equal(out.RunID))
			snap := doc.Snapshot()
			Expect(snap).To(Equal(out.Ledger))

			By("removing the ledger with a fresh context")
			removeCtx, _ := newScenarioContext(cfg, cloud)
			result, err := destroy.NewProvisioner().Teardown(removeCtx, snap)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Failed).To(BeZero())
			Expect(result.Deleted).To(Equal(snap.Len()))

			By("checking resources were deleted type by type in reverse creation order")
			deletions := cloud.Deletions()
			Expect(deletions).To(HaveLen(snap.Len()))
			Expect(deletions[0].Op).To(Equal("DeleteImageStore"))
			Expect(deletions[len(deletions)-1].Op).To(Equal("DeleteZone"))

			zoneIDs := snap.Resources[provisioning.ResourceZone]
			Expect(deletions[len(deletions)-2].ID).To(Equal(zoneIDs[0]))
			Expect(deletions[len(deletions)-1].ID).To(Equal(zoneIDs[1]))
		})
	})

	Context("when a host batch fails completely", func() {
		BeforeEach(func() {
			for range 2 {
				cloud.FailNext("AddHost", &cloudapi.APIError{Command: "addHost", Code: cloudapi.ErrCodeInternalError, Text: "host unreachable"})
			}
		})

		It("rolls back what it created and reports the original failure", func() {
			ctx, obs := newScenarioContext(cfg, cloud)
			out, err := deploy.NewProvisioner(deploy.WithStore(store)).Run(ctx)

			Expect(err).To(MatchError(deploy.ErrAllHostsFailed))
			Expect(out.RolledBack).To(BeTrue())
			Expect(out.Teardown.Failed).To(BeZero())
			Expect(out.Location).To(BeEmpty())
			Expect(cloud.Deletions()).To(HaveLen(out.Ledger.Len()))
			Expect(cloud.CallCount("CreateZone")).To(Equal(1))
			Expect(obs.Events(provisioning.EventPhaseFailed)).To(HaveLen(1))
		})
	})

	Context("when a created zone name is already taken", func() {
		BeforeEach(func() {
			cloud.ReserveZoneName("zone2")
		})

		It("creates the zone under a suffixed name", func() {
			ctx, _ := newScenarioContext(cfg, cloud)
			out, err := deploy.NewProvisioner(deploy.WithZoneSuffix(func() string { return "f00d01" })).Run(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(out.Zones).To(HaveLen(2))
			Expect(out.Zones[1].Name).To(Equal("zone2_f00d01"))
		})
	})
})
