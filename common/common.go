/*
 *	Copyright 2025 The ember Authors
 *
 *	Licensed under the Apache License, Version 2.0 (the "License");
 *	you may not use this file except in compliance with the License.
 *	You may obtain a copy of the License at
 *
 *	http://www.apache.org/licenses/LICENSE-2.0
 *
 *	Unless required by applicable law or agreed to in writing, software
 *	distributed under the License is distributed on an "AS IS" BASIS,
 *	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *	See the License for the specific language governing permissions and
 *	limitations under the License.
 */

// Package common holds the file-level helpers shared by drivers: saving and
// loading models and maps. The core packages never touch the filesystem
// (or log); this package is where streams meet files.
package common

import (
	"os"
	"os/user"
	"path"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/emberml/ember/model"
	"github.com/emberml/ember/serialization"
)

// FilePermMode is the default file creation permission (before umask) used
// for saved models.
var FilePermMode = os.FileMode(0660)

// ReplaceTildeInDir replaces an initial "~" in a directory path with the
// current user's home directory.
func ReplaceTildeInDir(dir string) string {
	if len(dir) == 0 || dir[0] != '~' {
		return dir
	}
	usr, _ := user.Current()
	homeDir := usr.HomeDir
	return path.Join(homeDir, dir[1:])
}

// save persists any Serializable root to filePath.
func save(filePath string, root serialization.Serializable) error {
	filePath = ReplaceTildeInDir(filePath)
	f, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, FilePermMode)
	if err != nil {
		return errors.Wrapf(err, "failed to create %q", filePath)
	}
	if err = serialization.Save(f, root); err != nil {
		_ = f.Close()
		return errors.WithMessagef(err, "saving %q to %q", root.TypeName(), filePath)
	}
	if err = f.Close(); err != nil {
		return errors.Wrapf(err, "failed to close %q", filePath)
	}
	klog.V(1).Infof("saved %q to %s", root.TypeName(), filePath)
	return nil
}

// load reconstructs a root object of type T from filePath. The node kinds
// the stream names must have been registered (importing the nodes package
// covers the generic kinds).
func load[T serialization.Serializable](filePath string) (T, error) {
	filePath = ReplaceTildeInDir(filePath)
	f, err := os.Open(filePath)
	if err != nil {
		var zero T
		return zero, errors.Wrapf(err, "failed to open %q", filePath)
	}
	defer func() { _ = f.Close() }()
	root, err := serialization.LoadAs[T](f)
	if err != nil {
		var zero T
		return zero, errors.WithMessagef(err, "loading %q", filePath)
	}
	klog.V(1).Infof("loaded %q from %s", root.TypeName(), filePath)
	return root, nil
}

// SaveModel persists a model to filePath (a "~" prefix is expanded).
func SaveModel(filePath string, m *model.Model) error {
	return save(filePath, m)
}

// LoadModel reads back a model saved with SaveModel.
func LoadModel(filePath string) (*model.Model, error) {
	return load[*model.Model](filePath)
}

// SaveMap persists a map to filePath.
func SaveMap(filePath string, m *model.Map) error {
	return save(filePath, m)
}

// LoadMap reads back a map saved with SaveMap.
func LoadMap(filePath string) (*model.Map, error) {
	return load[*model.Map](filePath)
}
