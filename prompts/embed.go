// Package prompts embeds the text templates used to turn questionnaire
// answers into recommendation prompts.
package prompts

import _ "embed"

//go:embed recommend/system.md
var RecommendSystemPrompt string

//go:embed recommend/answers.md.tmpl
var RecommendAnswersTemplate string
