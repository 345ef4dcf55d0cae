package linkup

import (
	"strings"
	"time"

	"github.com/openclaw/libresync/internal/model"
)

// serialMatches compares a service-reported serial against the locally
// tracked one. The service may prefix or reformat serials relative to the
// BLE-discovered value, so a suffix match in either direction counts.
func serialMatches(remote, local string) bool {
	if remote == "" || local == "" {
		return false
	}
	return strings.HasSuffix(remote, local) || strings.HasSuffix(local, remote)
}

// reconcileSensors resolves the activation reference for a fetch. On a serial
// match the matched sensor's activation epoch becomes the reference and the
// local sensor's activation/age fields are updated in place. With no local
// sensor assigned, the adopt policy may promote one of the service's sensors
// to the tracked identity. No match at all yields ActivationUnknown.
func reconcileSensors(entries []activeSensor, local *model.Sensor, adopt AdoptPolicy, now time.Time) (time.Time, *model.Sensor) {
	for _, entry := range entries {
		activatedAt := time.Unix(entry.Sensor.A, 0).UTC()

		if local != nil && serialMatches(entry.Sensor.SN, local.Serial) {
			local.ProductType = entry.Sensor.PT
			local.ActivatedAt = activatedAt
			local.AgeMinutes = int64(now.Sub(activatedAt) / time.Minute)
			return activatedAt, local
		}

		if local == nil && adopt != nil {
			candidate := model.Sensor{
				Serial:      entry.Sensor.SN,
				ProductType: entry.Sensor.PT,
				ActivatedAt: activatedAt,
				AgeMinutes:  int64(now.Sub(activatedAt) / time.Minute),
			}
			if adopt(candidate) {
				return activatedAt, &candidate
			}
		}
	}

	return ActivationUnknown, local
}
