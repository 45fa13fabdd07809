package components

import (
	"encoding/json"

	"github.com/sirupsen/logrus"
)

// JSON marshals an object to a JSON string, returning "{}" on error.
// Used for hx-vals attributes.
func JSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		logrus.WithError(err).Error("Error marshaling JSON for template")
		return "{}"
	}
	return string(b)
}
