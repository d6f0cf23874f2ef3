// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package material

// Property groups, in the order they conventionally appear in a
// material record.
const (
	Elasticity  = "elasticity"
	Common      = "common"
	Thermal     = "thermal"
	Geomechanic = "geomechanic"
	Plasticity  = "plasticity"
	Hardening   = "hardening"
	Creep       = "creep"
	Preload     = "preload"
	Strength    = "strength"
)

// KnownGroups lists the property groups with name tables.
var KnownGroups = []string{Elasticity, Common, Thermal, Geomechanic, Plasticity, Hardening, Creep, Preload, Strength}

var propertyTypes = map[string]map[int]string{
	Elasticity: {
		0:  "HOOK",
		1:  "HOOK_ORTHOTROPIC",
		2:  "HOOK_TRANSVERSAL_ISOTROPIC",
		3:  "BLATZ_KO",
		4:  "MURNAGHAN",
		11: "COMPR_MOONEY",
		20: "NEO_HOOK",
		21: "ANISOTROPIC",
	},
	Common:      {0: "USUAL"},
	Thermal:     {0: "ISOTROPIC", 1: "ORTHOTROPIC", 2: "TRANSVERSAL_ISOTROPIC"},
	Geomechanic: {0: "BIOT_ISOTROPIC", 1: "BIOT_ORTHOTROPIC", 2: "BIOT_TRANSVERSAL_ISOTROPIC"},
	Plasticity:  {0: "MISES", 1: "DRUCKER_PRAGER", 4: "DRUCKER_PRAGER_CREEP", 9: "MOHR_COULOMB"},
	Hardening:   {0: "LINEAR", 1: "MULTILINEAR"},
	Creep:       {0: "NORTON"},
	Preload:     {0: "INITIAL"},
	Strength:    {0: "ISOTROPIC"},
}

var constantNames = map[string]map[int]string{
	Elasticity: {
		0:   "YOUNG_MODULE",
		1:   "POISSON_RATIO",
		2:   "SHEAR_MODULUS",
		3:   "BULK_MODULUS",
		4:   "MU",
		5:   "ALPHA",
		6:   "BETA",
		7:   "LAME_MODULE",
		8:   "C3",
		9:   "C4",
		10:  "C5",
		16:  "E_T",
		17:  "E_L",
		18:  "PR_T",
		19:  "PR_TL",
		20:  "G_TL",
		21:  "G12",
		22:  "G23",
		23:  "G13",
		24:  "PRXY",
		25:  "PRYZ",
		26:  "PRXZ",
		27:  "C1",
		28:  "C2",
		29:  "D",
		82:  "C_1111",
		83:  "C_1112",
		84:  "C_1113",
		85:  "C_1122",
		86:  "C_1123",
		87:  "C_1133",
		88:  "C_1212",
		89:  "C_1213",
		90:  "C_1222",
		91:  "C_1223",
		92:  "C_1233",
		93:  "C_1313",
		94:  "C_1322",
		95:  "C_1323",
		96:  "C_1333",
		97:  "C_2222",
		98:  "C_2223",
		99:  "C_2233",
		100: "C_2323",
		101: "C_2333",
		102: "C_3333",
	},
	Common: {
		0: "DENSITY",
		1: "STRUCTURAL_DAMPING_RATIO",
		2: "MASS_DAMPING_RATIO",
		3: "STIFFNESS_DAMPING_RATIO",
	},
	Thermal: {
		0:  "COEF_LIN_EXPANSION",
		1:  "COEF_THERMAL_CONDUCTIVITY",
		5:  "COEF_THERMAL_CONDUCTIVITY_XX",
		9:  "COEF_THERMAL_CONDUCTIVITY_YY",
		13: "COEF_THERMAL_CONDUCTIVITY_ZZ",
		14: "COEF_LIN_EXPANSION_X",
		15: "COEF_LIN_EXPANSION_Y",
		16: "COEF_LIN_EXPANSION_Z",
		17: "COEF_THERMAL_CONDUCTIVITY_T",
		18: "COEF_THERMAL_CONDUCTIVITY_L",
		19: "COEF_LIN_EXPANSION_T",
		20: "COEF_LIN_EXPANSION_L",
	},
	Geomechanic: {
		0:  "PERMEABILITY",
		1:  "FLUID_VISCOSITY",
		2:  "POROSITY",
		3:  "FLUID_BULK_MODULUS",
		4:  "SOLID_BULK_MODULUS",
		5:  "BIOT_ALPHA",
		6:  "PERMEABILITY_XX",
		7:  "PERMEABILITY_XY",
		8:  "PERMEABILITY_XZ",
		9:  "PERMEABILITY_YX",
		10: "PERMEABILITY_YY",
		11: "PERMEABILITY_YZ",
		12: "PERMEABILITY_ZX",
		13: "PERMEABILITY_ZY",
		14: "PERMEABILITY_ZZ",
		15: "PERMEABILITY_T",
		16: "PERMEABILITY_TT",
		17: "PERMEABILITY_TL",
		18: "PERMEABILITY_L",
		19: "FLUID_DENSITY",
		20: "BIOT_MODULUS",
		21: "BIOT_ALPHA_X",
		22: "BIOT_ALPHA_Y",
		23: "BIOT_ALPHA_Z",
		24: "BIOT_ALPHA_T",
		25: "BIOT_ALPHA_L",
	},
	Plasticity: {
		0:  "YIELD_STRENGTH",
		5:  "YIELD_STRENGTH_COMPR",
		7:  "COHESION",
		8:  "INTERNAL_FRICTION_ANGLE",
		9:  "DILATANCY_ANGLE",
		21: "DPC_A",
		22: "DPC_N",
		23: "DPC_M",
	},
	Hardening: {
		0:  "COMPRESSIVE_STRAIN",
		1:  "TENSILE_STRAIN",
		2:  "E_TAN",
		3:  "MULTILINEAR_STRESS",
		4:  "HARDENING_COMPR",
		5:  "PLASTIC_STRAIN",
		6:  "TENSILE_STRAIN_COMPR",
		7:  "COMPRESSIVE_STRAIN_COMPR",
		8:  "STRESS",
		9:  "HARDENING",
		10: "E_TAN_COMPR",
		11: "PLASTIC_STRAIN_COMPR",
		12: "TABULAR_MODE_ID",
	},
}

// TypeName returns the name of property type code in group.
func TypeName(group string, code int) (string, bool) {
	name, ok := propertyTypes[group][code]
	return name, ok
}

// ConstantName returns the name of constant code in group.
func ConstantName(group string, code int) (string, bool) {
	name, ok := constantNames[group][code]
	return name, ok
}

// TypeCode is the inverse of TypeName.
func TypeCode(group, name string) (int, bool) {
	return lookupCode(propertyTypes[group], name)
}

// ConstantCode is the inverse of ConstantName.
func ConstantCode(group, name string) (int, bool) {
	return lookupCode(constantNames[group], name)
}

func lookupCode(table map[int]string, name string) (int, bool) {
	for code, candidate := range table {
		if candidate == name {
			return code, true
		}
	}
	return 0, false
}
