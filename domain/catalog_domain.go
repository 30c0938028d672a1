package domain

var (
	MessageSuccessGetTags        = "success get tags"
	MessageSuccessGetIngredients = "success get ingredients"

	MessageFailedGetTags        = "failed to get tags"
	MessageFailedGetIngredients = "failed to get ingredients"
)

type IngredientResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}
