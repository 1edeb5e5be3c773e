package railgeom

import "github.com/sirupsen/logrus"

// Logger receives the package's diagnostics: recoverable profile anomalies
// at warning level and unavailable bounding polygons at debug level.
// Replace it to route them elsewhere.
var Logger logrus.FieldLogger = logrus.StandardLogger()
