package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShiboSoftwareDev/hypergraph/internal/mesh"
	"github.com/ShiboSoftwareDev/hypergraph/pkg/geometry"
)

func TestVariantBasics(t *testing.T) {
	j := NewJumperVariant(DefaultJumperKnobs())
	assert.Equal(t, "jumper", j.Name())
	assert.Equal(t, UnitDistance, j.UnitOfCost())
	assert.Equal(t, 1.1, j.Knobs().GreedyMultiplier)

	v := NewViaVariant(DefaultViaKnobs())
	assert.Equal(t, "via", v.Name())
	assert.Equal(t, UnitHops, v.UnitOfCost())

	// A zero greedy multiplier falls back to 1.0.
	assert.Equal(t, 1.0, NewJumperVariant(Knobs{}).Knobs().GreedyMultiplier)
	assert.Equal(t, 1.0, NewViaVariant(Knobs{}).Knobs().GreedyMultiplier)

	assert.Equal(t, "hops", UnitHops.String())
	assert.Equal(t, "distance", UnitDistance.String())
}

func TestUsageAndCrossingPricing(t *testing.T) {
	k := Knobs{
		CrossingPenalty:    3,
		CrossingPenaltySq:  2,
		PortUsagePenalty:   5,
		PortUsagePenaltySq: 1,
	}

	assert.Equal(t, 0.0, crossingCost(k, 0))
	assert.Equal(t, 3.0+2.0, crossingCost(k, 1))
	assert.Equal(t, 6.0+8.0, crossingCost(k, 2))

	p := &mesh.Port{UseCount: 2}
	assert.Equal(t, 10.0+4.0, usagePenalty(k, p))
	assert.Equal(t, 0.0, usagePenalty(k, &mesh.Port{}))
}

func TestJumperEstimateIsEuclidean(t *testing.T) {
	sg, scs := jumperCrossProblem()
	s, err := NewFromSerialized(sg, scs, DefaultOptions())
	require.NoError(t, err)

	end, _ := s.Graph().RegionByID("C")
	s.endRegion = end
	n, _ := s.Graph().PortByID("n")

	j := NewJumperVariant(DefaultJumperKnobs())
	assert.InDelta(t, 15.0, j.EstimateCostToEnd(s, n), 1e-9)
}

func TestViaEstimateIsBFSDistance(t *testing.T) {
	sg, scs := viaProblem()
	opts := DefaultOptions()
	opts.Variant = NewViaVariant(DefaultViaKnobs())
	s, err := NewFromSerialized(sg, scs, opts)
	require.NoError(t, err)

	end, _ := s.Graph().RegionByID("R")
	s.endRegion = end
	lv, _ := s.Graph().PortByID("lv")
	vr, _ := s.Graph().PortByID("vr")

	v := NewViaVariant(DefaultViaKnobs())
	assert.Equal(t, 1.0, v.EstimateCostToEnd(s, lv))
	assert.Equal(t, 0.0, v.EstimateCostToEnd(s, vr))
}

func TestViaEstimateUnreachable(t *testing.T) {
	sg, _ := viaProblem()
	sg.Regions = append(sg.Regions, mesh.SerializedRegion{
		RegionID: "island",
		Bounds:   &geometry.Rect{X: 100, Width: 10, Height: 10},
	})
	opts := DefaultOptions()
	opts.Variant = NewViaVariant(DefaultViaKnobs())
	s, err := NewFromSerialized(sg, nil, opts)
	require.NoError(t, err)

	island, _ := s.Graph().RegionByID("island")
	s.endRegion = island
	lv, _ := s.Graph().PortByID("lv")

	v := NewViaVariant(DefaultViaKnobs())
	assert.True(t, math.IsInf(v.EstimateCostToEnd(s, lv), 1))
}

func TestRipPolicies(t *testing.T) {
	sg, scs := viaProblem()
	opts := DefaultOptions()
	opts.Variant = NewViaVariant(DefaultViaKnobs())
	s, err := NewFromSerialized(sg, scs, opts)
	require.NoError(t, err)

	vRegion, _ := s.Graph().RegionByID("V")
	lv, _ := s.Graph().PortByID("lv")
	vr, _ := s.Graph().PortByID("vr")
	s.current = s.connections[1] // net2

	occupant := &mesh.Assignment{
		Region: vRegion, Port1: lv, Port2: vr,
		Connection: s.connections[0], // net1
	}
	vRegion.AddAssignment(occupant)

	via := NewViaVariant(DefaultViaKnobs())
	required, err := via.RipRequiredForPortUsage(s, vRegion, lv, vr)
	require.NoError(t, err)
	assert.True(t, required)
	rips, err := via.RipsRequiredForPortUsage(s, vRegion, lv, vr)
	require.NoError(t, err)
	assert.Equal(t, []*mesh.Assignment{occupant}, rips)

	// Plain regions never force rips under the via policy.
	wRegion, _ := s.Graph().RegionByID("W")
	lw, _ := s.Graph().PortByID("lw")
	wr, _ := s.Graph().PortByID("wr")
	required, err = via.RipRequiredForPortUsage(s, wRegion, lw, wr)
	require.NoError(t, err)
	assert.False(t, required)

	// The jumper policy rips only geometric crossings; a chord sharing
	// both endpoints with the occupant does not conflict.
	wRegion.AddAssignment(&mesh.Assignment{
		Region: wRegion, Port1: lw, Port2: wr,
		Connection: s.connections[0], // net1
	})
	jumper := NewJumperVariant(DefaultJumperKnobs())
	required, err = jumper.RipRequiredForPortUsage(s, wRegion, lw, wr)
	require.NoError(t, err)
	assert.False(t, required, "identical chord shares both endpoints, no crossing")
}
