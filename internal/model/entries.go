package model

import "sort"

//DirEntries holds the entries of one directory pair, keyed by the entry's base name.
//Two entries of the pair are the same entry iff their names are equal.
type DirEntries struct {
	eMap map[string]*EntryInfo
}

func NewDirEntries() *DirEntries {
	return &DirEntries{eMap: make(map[string]*EntryInfo, 10)}
}

//UpdateValueByKey creates the entry if needed and lets the updater change it in place.
func (d *DirEntries) UpdateValueByKey(name string, valueUpdater func(*EntryInfo)) {
	entry, ok := d.eMap[name]
	if !ok {
		entry = &EntryInfo{Name: name}
		d.eMap[name] = entry
	}
	valueUpdater(entry)
}

func (d *DirEntries) Get(name string) (EntryInfo, bool) {
	entry, ok := d.eMap[name]
	if !ok {
		return EntryInfo{}, false
	}
	return *entry, true
}

func (d *DirEntries) Len() int {
	return len(d.eMap)
}

//SourceNames returns names present in the source directory, sorted.
func (d *DirEntries) SourceNames() []string {
	return d.names(func(e *EntryInfo) bool { return e.SrcPathInfo.Exists })
}

//ReplicaOnlyNames returns names present in the replica directory but absent from the source one, sorted.
func (d *DirEntries) ReplicaOnlyNames() []string {
	return d.names(func(e *EntryInfo) bool { return e.CopyPathInfo.Exists && !e.SrcPathInfo.Exists })
}

func (d *DirEntries) names(filter func(*EntryInfo) bool) []string {
	names := make([]string, 0, len(d.eMap))
	for name, e := range d.eMap {
		if filter(e) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
