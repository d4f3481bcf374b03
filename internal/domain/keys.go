package domain

// KeyPrefix namespaces every catalog key in the store.
const KeyPrefix = "medialib:"
