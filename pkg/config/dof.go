package config

import "motiongen/pkg/trajectory"

// LoadDoFLimits reads every `[dof <name>]` section in cfg and returns the
// ordered list of DoF names and their parsed trajectory.AxisLimits, in the
// order the sections appear in the file. Used only by cmd/, never by
// pkg/trajectory itself: the core takes limits as plain arguments.
func LoadDoFLimits(cfg *Config) (names []string, limits []trajectory.AxisLimits, err error) {
	if len(cfg.GetPrefixSectionNames("dof")) == 0 {
		return nil, nil, NewConfigError("", "", "no [dof <name>] sections found")
	}
	for _, name := range cfg.GetPrefixSectionNames("dof") {
		section := cfg.GetSectionOptional(name)
		if section == nil {
			continue
		}
		dofName := name
		if len(name) > len("dof") {
			dofName = name[len("dof"):]
			for len(dofName) > 0 && dofName[0] == ' ' {
				dofName = dofName[1:]
			}
		}

		vMax, err := section.GetKinematicLimit("max_velocity")
		if err != nil {
			return nil, nil, err
		}
		aMax, err := section.GetKinematicLimit("max_accel")
		if err != nil {
			return nil, nil, err
		}
		jMax, err := section.GetKinematicLimit("max_jerk")
		if err != nil {
			return nil, nil, err
		}

		names = append(names, dofName)
		limits = append(limits, trajectory.AxisLimits{
			MaxVelocity:     vMax,
			MaxAcceleration: aMax,
			MaxJerk:         jMax,
		})
	}
	return names, limits, nil
}
