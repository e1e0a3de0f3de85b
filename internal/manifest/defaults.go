package manifest

// Default returns the compiled-in manifest of the reference book. Each call
// returns a fresh copy, so callers cannot alter another run's input.
func Default() Manifest {
	return Manifest{
		Examples: defaultExamples(),
		Topics:   defaultTopics(),
	}
}

func example(key, title string) Example {
	return Example{Key: key, Title: title, StripAsserts: true, RunLink: true}
}

func defaultExamples() []Example {
	return []Example{
		example("acidity", "Acidity"),
		example("barometric_formula", "Barometric formula"),
		example("body_mass_index", "Body mass index"),
		{Key: "factorial", Title: "Factorial", StripAsserts: false, RunLink: true},
		example("medication_dosage", "Medication dosage"),
		example("molarity", "Molarity"),
		example("musical_note_frequency", "Musical note frequency"),
		example("paper_size", "Paper sizes"),
		example("pipe_flow_rate", "Flow rate in a pipe"),
		example("population_growth", "Population growth"),
		example("recipe", "Recipe"),
		example("voyager", "Voyager"),
		example("xkcd_687", "XKCD 687"),
		example("xkcd_2585", "XKCD 2585"),
		example("xkcd_2812", "XKCD 2812"),
		{Key: "numbat_syntax", Title: "Syntax overview", StripAsserts: false, RunLink: false},
	}
}

func defaultTopics() []TopicDocument {
	return []TopicDocument{
		{
			Name:  "math",
			Title: "Mathematical functions",
			Sections: []Section{
				{Title: "Basics", Modules: []string{"core::functions"}},
				{Title: "Transcendental functions", Modules: []string{"math::transcendental"}},
				{Title: "Trigonometry", Modules: []string{"math::trigonometry"}},
				{Title: "Statistics", Modules: []string{"math::statistics"}},
				{Title: "Random sampling, distributions", Modules: []string{"core::random", "math::distributions"}},
				{Title: "Number theory", Modules: []string{"core::number_theory"}},
				{Title: "Numerical methods", Modules: []string{"numerics::diff", "numerics::solve"}},
				{Title: "Geometry", Modules: []string{"math::geometry"}},
				{Title: "Algebra", Modules: []string{"extra::algebra"}},
				{Title: "Trigonometry (extra)", Modules: []string{"math::trigonometry_extra"}},
			},
		},
		{
			Name:     "lists",
			Title:    "List-related functions",
			Sections: []Section{{Modules: []string{"core::lists"}}},
		},
		{
			Name:     "strings",
			Title:    "String-related functions",
			Sections: []Section{{Modules: []string{"core::strings"}}},
		},
		{
			Name:         "datetime",
			Title:        "Date and time",
			Introduction: "See [this page](./date-and-time.md) for a general introduction to date and time handling in Numbat.",
			Sections:     []Section{{Modules: []string{"datetime::functions", "datetime::human"}}},
		},
		{
			Name:  "other",
			Title: "Other functions",
			Sections: []Section{
				{Title: "Error handling", Modules: []string{"core::error"}},
				{Title: "Floating point", Modules: []string{"core::numbers"}},
				{Title: "Quantities", Modules: []string{"core::quantities"}},
				{Title: "Chemical elements", Modules: []string{"chemistry::elements"}},
				{Title: "Temperature conversion", Modules: []string{"physics::temperature_conversion"}},
			},
		},
	}
}
