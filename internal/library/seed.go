package library

func seedCategories() []Category {
	return []Category{
		{ID: "cat_work", Name: "Work / InfoSec"},
		{ID: "cat_science", Name: "Philosophy / Science"},
		{ID: "cat_scratch", Name: "Scratch"},
	}
}

// Seed returns a fresh copy of the sample library written on first run and
// whenever the existing file cannot be used.
func Seed() *Library {
	return &Library{
		Categories: seedCategories(),
		Prompts: []Prompt{
			{
				ID:         "p_risk_summary",
				CategoryID: "cat_work",
				Title:      "Risk summary (1 page)",
				Body: "Write a 1-page risk summary.\n\nContext:\n- System/Process:\n- Data types:\n- Threats:\n" +
					"- Controls:\n- Residual risk:\n- Recommended next steps:\n\nConstraints:\n" +
					"- Be precise and non-alarmist.\n- Include assumptions explicitly.",
			},
			{
				ID:         "p_policy_rewrite",
				CategoryID: "cat_work",
				Title:      "Policy clause rewrite",
				Body: "Rewrite the following policy clause for clarity, enforceability, and least-privilege alignment.\n\n" +
					"Clause:\n<PASTE HERE>\n\nRequirements:\n- Keep intent the same unless you flag changes.\n" +
					"- Provide: (1) clean rewrite (2) annotated rationale (3) options if tradeoffs exist.",
			},
			{
				ID:         "p_first_principles",
				CategoryID: "cat_science",
				Title:      "First-principles explanation",
				Body: "Explain this from first principles.\n\nTopic:\n<PASTE HERE>\n\nConstraints:\n" +
					"- Define terms on first use.\n- Make assumptions explicit.\n" +
					"- Use one or two logical steps at a time, and pause at natural checkpoints.",
			},
			{
				ID:         "p_blank_scaffold",
				CategoryID: "cat_scratch",
				Title:      "Blank scaffold",
				Body:       "Context:\n\nGoal:\n\nConstraints:\n\nWhat I tried:\n\nQuestion:",
			},
		},
		CheckpointCategories: seedCategories(),
		Checkpoints:          []Checkpoint{},
	}
}

// Empty returns a library with no categories or items.
func Empty() *Library {
	return &Library{
		Categories:           []Category{},
		Prompts:              []Prompt{},
		CheckpointCategories: []Category{},
		Checkpoints:          []Checkpoint{},
	}
}
