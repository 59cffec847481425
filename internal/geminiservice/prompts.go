package geminiservice

/* =================================================================================
							PROMPT TEMPLATES
	Fixed instructions sent to Gemini. User input is appended or interpolated
	verbatim; nothing is trimmed or validated.
=================================================================================*/

// BaseNutritionPrompt asks the model for a calorie and macro breakdown of the
// food shown in the image.
const BaseNutritionPrompt = `
    You are an expert nutritionist. Analyze the food items from the image and calculate total calories.
    Provide the analysis in this format:

    FOOD ITEMS AND CALORIES:
    1. Item 1 - XXX calories
    2. Item 2 - XXX calories
    3. Item 3 - XXX calories

    TOTAL CALORIES:
    Your total caloric intake from this meal is XXX calories.

    NUTRITIONAL ANALYSIS:
    - Carbohydrates: XX%
    - Protein: XX%
    - Fat: XX%

    RECOMMENDATION:
    [Your food is healthy/Your food is not healthy] because [reason].
    Suggested improvements: [suggestions].
    `

const (
	preparationClause = "\nMeal Preparation Details: "

	mealPlanPrefix = "Generate a detailed 7-day personalized meal plan based on the following preferences: "
	mealPlanSuffix = ". Include recipes, nutritional information, and grocery list."
)

// BuildAnalysisPrompt returns the base prompt, followed by the preparation
// note when one was given.
func BuildAnalysisPrompt(preparation string) string {
	if preparation == "" {
		return BaseNutritionPrompt
	}
	return BaseNutritionPrompt + preparationClause + preparation
}

// BuildMealPlanPrompt substitutes the preferences into the meal-plan
// template. Empty preferences are allowed.
func BuildMealPlanPrompt(preferences string) string {
	return mealPlanPrefix + preferences + mealPlanSuffix
}
