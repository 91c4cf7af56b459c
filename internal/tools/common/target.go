package common

// GetStoreFromArgs extracts the mailbox store name from request arguments.
// An empty result means the profile's default store.
func GetStoreFromArgs(args map[string]interface{}) string {
	if store, ok := args["store"].(string); ok {
		return store
	}
	return ""
}

// GetFolderFromArgs extracts the folder name from request arguments,
// falling back to the given default when the argument is absent or empty.
func GetFolderFromArgs(args map[string]interface{}, fallback string) string {
	if folder, ok := args["folder"].(string); ok && folder != "" {
		return folder
	}
	return fallback
}
