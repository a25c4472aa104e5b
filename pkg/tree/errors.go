/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors.go
Description: Sentinel errors of the tree package.
*/

package tree

import "errors"

// ErrTooManyPartialTrees indicates more distinct partial trees than Options.MaxPartialTrees allows.
var ErrTooManyPartialTrees = errors.New("tree: too many partial trees to combine")
