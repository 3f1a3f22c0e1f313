/*
 * Minis
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package version contains the version of Minis.
*/
package version

/*
PRODUCT is the product name
*/
const PRODUCT = "Minis"

/*
VERSION is the version of Minis
*/
const VERSION = "1.0.0"
