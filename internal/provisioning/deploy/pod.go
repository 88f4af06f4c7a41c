package deploy

import (
	"context"
	"fmt"

	"github.com/imamik/dcdeploy/internal/config"
	"github.com/imamik/dcdeploy/internal/platform/cloudapi"
	"github.com/imamik/dcdeploy/internal/provisioning"
)

const waitHostUp = "host-up"

// createPods creates each pod with its guest ranges, VMware datacenter and
// clusters. Guest ranges are only added when networkID is set.
func createPods(ctx *provisioning.Context, zoneID string, pods []config.Pod, networkID string) error {
	for i := range pods {
		pod := &pods[i]
		provisioning.LogResourceCreating(ctx.Observer, zonesPhase, provisioning.ResourcePod, pod.Name)
		resp, err := ctx.Client.CreatePod(ctx, podRequest(zoneID, pod))
		if err != nil {
			return fail(ctx, zonesPhase, provisioning.ResourcePod, pod.Name, err)
		}
		podID, err := recordRequired(ctx, zonesPhase, provisioning.ResourcePod, pod.Name, resp.ID)
		if err != nil {
			return err
		}

		if networkID != "" && len(pod.GuestIPRanges) > 0 {
			scope := vlanRangeScope{zoneID: zoneID, podID: podID, networkID: networkID}
			if err := createVlanIPRanges(ctx, scope, pod.GuestIPRanges); err != nil {
				return err
			}
		}

		if pod.VmwareDC != nil {
			if err := addVmwareDc(ctx, zoneID, pod.VmwareDC); err != nil {
				return err
			}
		}

		for j := range pod.Clusters {
			if err := createCluster(ctx, zoneID, podID, &pod.Clusters[j]); err != nil {
				return err
			}
		}
	}
	return nil
}

// addVmwareDc registers the datacenter. The ledger keeps the zone id because
// the datacenter is removed per zone.
func addVmwareDc(ctx *provisioning.Context, zoneID string, dc *config.VmwareDC) error {
	provisioning.LogResourceCreating(ctx.Observer, zonesPhase, provisioning.ResourceVmwareDc, dc.Name)
	resp, err := ctx.Client.AddVmwareDc(ctx, vmwareDcRequest(zoneID, dc))
	if err != nil {
		return fail(ctx, zonesPhase, provisioning.ResourceVmwareDc, dc.Name, err)
	}
	if resp.ID == "" {
		return fail(ctx, zonesPhase, provisioning.ResourceVmwareDc, dc.Name, ErrMissingID)
	}
	register(ctx, zonesPhase, provisioning.ResourceVmwareDc, dc.Name, zoneID)
	return nil
}

// createCluster adds the cluster and its hosts, waits for the hosts to come
// up, then creates the cluster's primary storage.
func createCluster(ctx *provisioning.Context, zoneID, podID string, cluster *config.Cluster) error {
	provisioning.LogResourceCreating(ctx.Observer, zonesPhase, provisioning.ResourceCluster, cluster.Name)
	resp, err := ctx.Client.AddCluster(ctx, clusterRequest(zoneID, podID, cluster))
	if err != nil {
		return fail(ctx, zonesPhase, provisioning.ResourceCluster, cluster.Name, err)
	}
	clusterID, err := recordRequired(ctx, zonesPhase, provisioning.ResourceCluster, cluster.Name, resp.ID)
	if err != nil {
		return err
	}

	if len(cluster.Hosts) > 0 {
		if err := addHosts(ctx, zoneID, podID, clusterID, cluster); err != nil {
			return err
		}
		if err := waitForHosts(ctx, zoneID, clusterID, cluster.Name); err != nil {
			return err
		}
	}

	for i := range cluster.PrimaryStorages {
		if err := createStoragePool(ctx, zoneID, podID, clusterID, &cluster.PrimaryStorages[i]); err != nil {
			return err
		}
	}
	return nil
}

// addHosts adds every host of the cluster. Individual failures are counted;
// only a batch in which every host failed escalates.
func addHosts(ctx *provisioning.Context, zoneID, podID, clusterID string, cluster *config.Cluster) error {
	failed := 0
	for i := range cluster.Hosts {
		host := &cluster.Hosts[i]
		provisioning.LogResourceCreating(ctx.Observer, zonesPhase, provisioning.ResourceHost, host.URL)

		resp, err := ctx.Client.AddHost(ctx, hostRequest(zoneID, podID, clusterID, cluster, host))
		if err != nil {
			provisioning.LogResourceFailed(ctx.Observer, zonesPhase, provisioning.ResourceHost, host.URL, err)
			ctx.Metrics.RecordCreateFailure(provisioning.ResourceHost)
			failed++
			continue
		}
		if !recordOptional(ctx, zonesPhase, provisioning.ResourceHost, host.URL, resp.ID) {
			failed++
		}
	}

	switch {
	case failed == len(cluster.Hosts):
		return fmt.Errorf("cluster %s: %w", cluster.Name, ErrAllHostsFailed)
	case failed > 0:
		ctx.Observer.Printf("[Zones] %d of %d hosts failed in cluster %s", failed, len(cluster.Hosts), cluster.Name)
	}
	return nil
}

// waitForHosts polls until every host of the cluster reports Up. Giving up is
// logged and provisioning continues; a failed listing escalates.
func waitForHosts(ctx *provisioning.Context, zoneID, clusterID, name string) error {
	waiter := ctx.HostUpWaiter()
	converged, err := waiter.Until(ctx, func(c context.Context) (bool, error) {
		hosts, err := ctx.Client.ListHosts(c, cloudapi.ListHostsRequest{ZoneID: zoneID, ClusterID: clusterID})
		if err != nil {
			return false, err
		}
		return allUp(hosts), nil
	})
	if err != nil {
		return fmt.Errorf("failed to list hosts of cluster %s: %w", name, err)
	}

	ctx.Metrics.RecordWait(waitHostUp, converged)
	if !converged {
		provisioning.LogWaitGaveUp(ctx.Observer, zonesPhase, waitHostUp, name, waiter.Attempts)
		return nil
	}
	ctx.Observer.Printf("[Zones] All hosts of cluster %s are up", name)
	return nil
}

func allUp(hosts []cloudapi.Host) bool {
	if len(hosts) == 0 {
		return false
	}
	for _, h := range hosts {
		if h.State != cloudapi.StateUp {
			return false
		}
	}
	return true
}
