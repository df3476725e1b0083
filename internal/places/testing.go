package places

// SetNearbyTestURL overrides the nearby-search URL on a client.
// This should only be used in tests.
func SetNearbyTestURL(c *NearbyClient, nearbyURL string) {
	if nearbyURL != "" {
		c.nearbyURL = nearbyURL
	}
}

// SetDistanceTestURL overrides the distance-matrix URL on a client.
// This should only be used in tests.
func SetDistanceTestURL(c *RouteClient, distanceURL string) {
	if distanceURL != "" {
		c.distanceURL = distanceURL
	}
}
