package substrate

// Version is the release of the substrate designer.
const Version = "0.3.0"
