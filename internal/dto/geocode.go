package dto

// ReverseGeocodeQuery represents query parameters for reverse geocoding
type ReverseGeocodeQuery struct {
	Latitude  float64 `form:"lat" binding:"required,min=-90,max=90"`
	Longitude float64 `form:"lng" binding:"required,min=-180,max=180"`
}

// ReverseGeocodeResponse is the resolved place name for a coordinate pair
type ReverseGeocodeResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	PlaceName string  `json:"place_name"`
}

// UploadImageResponse describes a stored image
type UploadImageResponse struct {
	Key       string `json:"key"`
	URL       string `json:"url"`
	SizeBytes int64  `json:"size_bytes"`
}
