package render

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Nazarious-ucu/console-weather/internal/models"
)

var ErrNoConditions = errors.New("weather service returned no conditions")

// Printable formats the first condition record as a single line. Further
// records are ignored.
func Printable(city, state, postal string, conds models.Conditions, noIcons bool) (string, error) {
	if len(conds) == 0 {
		return "", ErrNoConditions
	}
	cond := conds[0]

	icon := ""
	if !noIcons {
		icon = Icon(cond.WeatherIcon)
	}

	metric := cond.Temperature.Metric
	return fmt.Sprintf("Weather in %s, %s %s: %s°%s - %s%s",
		city, state, postal,
		strconv.FormatFloat(metric.Value, 'f', -1, 64), metric.Unit,
		icon, cond.WeatherText,
	), nil
}
