package resources_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/skillcoder/clusterwatch/internal/logic/resources"
)

type convertCase struct {
	name      string
	giveValue string
	want      int64
}

func TestCPU(t *testing.T) {
	t.Parallel()

	tests := []convertCase{
		{name: "millicores", giveValue: "500m", want: 500_000_000},
		{name: "whole cores", giveValue: "2", want: 2_000_000_000},
		{name: "fractional cores", giveValue: "0.25", want: 250_000_000},
		{name: "nanocores", giveValue: "1500n", want: 1500},
		{name: "microcores", giveValue: "3u", want: 3000},
		{name: "empty", giveValue: "", want: 0},
		{name: "garbage", giveValue: "lots", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, resources.CPU(tt.giveValue))
		})
	}
}

func TestMemory(t *testing.T) {
	t.Parallel()

	tests := []convertCase{
		{name: "gibibytes", giveValue: "1Gi", want: 1073741824},
		{name: "mebibytes", giveValue: "128Mi", want: 134217728},
		{name: "decimal megabytes", giveValue: "512M", want: 512_000_000},
		{name: "plain bytes", giveValue: "4096", want: 4096},
		{name: "empty", giveValue: "", want: 0},
		{name: "garbage", giveValue: "1 gig", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, resources.Memory(tt.giveValue))
		})
	}
}

func TestPodsAndStorage(t *testing.T) {
	t.Parallel()

	require.Equal(t, int64(110), resources.Pods("110"))
	require.Equal(t, int64(0), resources.Pods(""))
	require.Equal(t, int64(10737418240), resources.Storage("10Gi"))
}

func TestFromResourceList(t *testing.T) {
	t.Parallel()

	got := resources.FromResourceList(corev1.ResourceList{
		corev1.ResourceCPU:              resource.MustParse("3500m"),
		corev1.ResourceMemory:           resource.MustParse("16Gi"),
		corev1.ResourcePods:             resource.MustParse("110"),
		corev1.ResourceEphemeralStorage: resource.MustParse("100Gi"),
	})

	require.Equal(t, resources.List{
		resources.KeyCPU:    {Amount: 3_500_000_000, Unit: resources.UnitNano},
		resources.KeyMemory: {Amount: 17179869184, Unit: resources.UnitNone},
		resources.KeyPods:   {Amount: 110, Unit: resources.UnitNone},
	}, got)
}

func TestBounded(t *testing.T) {
	t.Parallel()

	list := resources.FromResourceList(corev1.ResourceList{
		corev1.ResourceCPU:    resource.MustParse("3900m"),
		corev1.ResourceMemory: resource.MustParse("15Gi"),
	})

	got := resources.Bounded(list)
	require.Equal(t, list, got.Requests)
	require.Equal(t, list, got.Limits)

	got.Limits[resources.KeyCPU] = resources.Quantity{}
	require.Equal(t, int64(3_900_000_000), got.Requests[resources.KeyCPU].Amount)
}
