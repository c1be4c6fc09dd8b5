package domain

type MuscleGroup string

const (
	MuscleGroupChest      MuscleGroup = "chest"
	MuscleGroupUpperBack  MuscleGroup = "upper_back"
	MuscleGroupLats       MuscleGroup = "lats"
	MuscleGroupShoulders  MuscleGroup = "shoulders"
	MuscleGroupBiceps     MuscleGroup = "biceps"
	MuscleGroupTriceps    MuscleGroup = "triceps"
	MuscleGroupForearms   MuscleGroup = "forearms"
	MuscleGroupCore       MuscleGroup = "core"
	MuscleGroupQuads      MuscleGroup = "quads"
	MuscleGroupHamstrings MuscleGroup = "hamstrings"
	MuscleGroupGlutes     MuscleGroup = "glutes"
	MuscleGroupCalves     MuscleGroup = "calves"
	MuscleGroupHipFlexors MuscleGroup = "hip_flexors"
	MuscleGroupAdductors  MuscleGroup = "adductors"
	MuscleGroupAbductors  MuscleGroup = "abductors"
)

var muscleGroups = []MuscleGroup{
	MuscleGroupChest, MuscleGroupUpperBack, MuscleGroupLats, MuscleGroupShoulders,
	MuscleGroupBiceps, MuscleGroupTriceps, MuscleGroupForearms, MuscleGroupCore,
	MuscleGroupQuads, MuscleGroupHamstrings, MuscleGroupGlutes, MuscleGroupCalves,
	MuscleGroupHipFlexors, MuscleGroupAdductors, MuscleGroupAbductors,
}

func ParseMuscleGroup(value string) (MuscleGroup, error) {
	return parseEnum("muscle group", "groups", value, muscleGroups)
}

// MuscleInvolvement is how strongly an exercise works a muscle group.
type MuscleInvolvement string

const (
	MuscleInvolvementPrimary    MuscleInvolvement = "primary"
	MuscleInvolvementSecondary  MuscleInvolvement = "secondary"
	MuscleInvolvementStabilizer MuscleInvolvement = "stabilizer"
)

var muscleInvolvements = []MuscleInvolvement{
	MuscleInvolvementPrimary,
	MuscleInvolvementSecondary,
	MuscleInvolvementStabilizer,
}

func ParseMuscleInvolvement(value string) (MuscleInvolvement, error) {
	return parseEnum("muscle involvement", "involvements", value, muscleInvolvements)
}

type TargetMusclePrimitives struct {
	MuscleGroup string `bson:"muscleGroup" json:"muscleGroup"`
	Involvement string `bson:"involvement" json:"involvement"`
}

// TargetMuscle pairs a muscle group with how much the exercise involves it.
type TargetMuscle struct {
	muscleGroup MuscleGroup
	involvement MuscleInvolvement
}

func TargetMuscleFromPrimitives(p TargetMusclePrimitives) (TargetMuscle, error) {
	group, err := ParseMuscleGroup(p.MuscleGroup)
	if err != nil {
		return TargetMuscle{}, err
	}
	involvement, err := ParseMuscleInvolvement(p.Involvement)
	if err != nil {
		return TargetMuscle{}, err
	}
	return TargetMuscle{muscleGroup: group, involvement: involvement}, nil
}

func (t TargetMuscle) MuscleGroup() MuscleGroup       { return t.muscleGroup }
func (t TargetMuscle) Involvement() MuscleInvolvement { return t.involvement }

func (t TargetMuscle) ToPrimitives() TargetMusclePrimitives {
	return TargetMusclePrimitives{MuscleGroup: string(t.muscleGroup), Involvement: string(t.involvement)}
}

func targetMusclesFromPrimitives(ps []TargetMusclePrimitives) ([]TargetMuscle, error) {
	muscles := make([]TargetMuscle, 0, len(ps))
	for _, p := range ps {
		m, err := TargetMuscleFromPrimitives(p)
		if err != nil {
			return nil, err
		}
		muscles = append(muscles, m)
	}
	return muscles, nil
}
