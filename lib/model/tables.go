// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package model

var loadTypes = map[int]string{
	// Facet loads.
	1:  "FaceDeadStress",
	3:  "FaceTrackingStress",
	11: "FaceHeatFlux",
	13: "FaceConvection",
	15: "FaceRadiation",
	19: "FaceAbsorbingBC",
	21: "ShellHeatfluxTopBottom",
	22: "ShellHeatfluxTop",
	23: "ShellHeatfluxBottom",
	24: "ShellConvectionTopBottom",
	25: "ShellConvectionTop",
	26: "ShellConvectionBottom",
	35: "FaceDistributedForce",
	36: "FaceEquivalentForce",
	37: "FaceTrackingDistributedForce",
	38: "FaceTrackingEquivalentForce",
	39: "FaceFluidFlux",

	// Edge loads.
	2:  "SegmentDeadStress",
	4:  "SegmentTrackingStress",
	12: "SegmentHeatFlux",
	14: "SegmentConvection",
	16: "SegmentRadiation",
	20: "SegmentAbsorbingBC",
	31: "SegmentDistributedForce",
	32: "SegmentEquivalentForce",
	33: "SegmentTrackingDistributedForce",
	34: "SegmentTrackingEquivalentForce",
	40: "SegmentFluidFlux",

	// Nodal loads.
	5:  "NodeForce",
	18: "HeatSource",
	28: "NodeHeatFlux",
	29: "NodeConvection",
	30: "NodeRadiation",
	41: "NodeFluidFlux",
	43: "FluidSource",

	// Volume loads.
	17: "VolumeHeatSource",
	42: "VolumeFluidSource",
	44: "VolumeGravityMassForce",
}

var restraintFlags = map[int]string{
	0:  "EmptyRestraint",
	1:  "Displacement",
	2:  "Velocity",
	3:  "Temperature",
	4:  "TemperatureTop",
	5:  "TemperatureBottom",
	6:  "TemperatureMiddle",
	7:  "TemperatureGradient",
	9:  "Acceleration",
	10: "PorePressure",
	12: "DirectionDisplacement",
	13: "DirectionVelocity",
	14: "DirectionAcceleration",
	15: "VolumeAngularVelocity",
}

// LoadTypeName returns the name of a load type code.
func LoadTypeName(code int) (string, bool) {
	name, ok := loadTypes[code]
	return name, ok
}

// LoadTypeCode is the inverse of LoadTypeName.
func LoadTypeCode(name string) (int, bool) {
	for code, candidate := range loadTypes {
		if candidate == name {
			return code, true
		}
	}
	return 0, false
}

// RestraintFlagName returns the name of a restraint axis flag.
func RestraintFlagName(code int) (string, bool) {
	name, ok := restraintFlags[code]
	return name, ok
}
