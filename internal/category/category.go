package category

// Category is the public DTO returned by the category API.
// JSON tags follow the camelCase convention used across the project.
type Category struct {
	ID            int     `json:"categoryId"`
	Name          string  `json:"name"`
	LocalizedName *string `json:"localizedName,omitempty"`
	Image         *string `json:"image,omitempty"`
	Active        bool    `json:"active"`
}
