package constants

const (
	// DefaultFavoritesNamespace keys every persisted favorite
	DefaultFavoritesNamespace = "favorites-storage"

	FavoritesBackendBadger = "badger"
	FavoritesBackendSQLite = "sqlite"
	FavoritesBackendMemory = "memory"

	SourceTypeSWAPI = "swapi"
	SourceTypeFile  = "file"

	DefaultSWAPIBaseURL = "https://swapi.dev/api"
	PeopleResource      = "people"
)
