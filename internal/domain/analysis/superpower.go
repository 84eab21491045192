package analysis

// DomainFlags are the coarse technology-domain booleans feeding the
// super-power rule table.
type DomainFlags struct {
	GenerativeAI bool
	OnDeviceML   bool
	Spatial3D    bool
}

// DomainFlagsFrom sets each flag iff at least one detected capability falls
// into that domain.
func DomainFlagsFrom(caps []CapabilityCategory) DomainFlags {
	var f DomainFlags
	for _, c := range caps {
		switch capabilityDomains[c.Name] {
		case DomainGenerativeAI:
			f.GenerativeAI = true
		case DomainOnDeviceML:
			f.OnDeviceML = true
		case DomainSpatial3D:
			f.Spatial3D = true
		}
	}
	return f
}

type superPowerRule struct {
	matches func(DomainFlags) bool
	power   SuperPower
}

// superPowerRules is an explicit enumeration evaluated in declaration order.
// Rules are independent, not mutually exclusive: every matching combination
// produces one entry, so all three domains together fire all four rules.
var superPowerRules = []superPowerRule{
	{
		matches: func(f DomainFlags) bool { return f.GenerativeAI && f.OnDeviceML },
		power: SuperPower{
			Label:       "Hybrid AI Pipeline",
			Description: "Combines generative AI with on-device ML: local models can filter, rank, or pre-process before expensive generation calls.",
		},
	},
	{
		matches: func(f DomainFlags) bool { return f.GenerativeAI && f.Spatial3D },
		power: SuperPower{
			Label:       "Generative 3D Experiences",
			Description: "Generative AI drives 3D content: scenes, textures, or narration can be produced on demand inside a rendered world.",
		},
	},
	{
		matches: func(f DomainFlags) bool { return f.OnDeviceML && f.Spatial3D },
		power: SuperPower{
			Label:       "Spatially-Aware Vision",
			Description: "On-device ML feeds the 3D layer: pose, hand, or object detection can steer cameras and scene interaction in real time.",
		},
	},
	{
		matches: func(f DomainFlags) bool { return f.GenerativeAI && f.OnDeviceML && f.Spatial3D },
		power: SuperPower{
			Label:       "Full-Spectrum Intelligence",
			Description: "All three domains co-exist: perception, generation, and spatial rendering form a complete interactive AI stack.",
		},
	},
}

// DeriveSuperPowers is a pure function of the capability set: identical
// input always yields an identical list in the same order.
func DeriveSuperPowers(caps []CapabilityCategory) []SuperPower {
	flags := DomainFlagsFrom(caps)
	var out []SuperPower
	for _, rule := range superPowerRules {
		if rule.matches(flags) {
			out = append(out, rule.power)
		}
	}
	return out
}
