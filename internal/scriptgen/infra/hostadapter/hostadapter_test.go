package hostadapter

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SceneScript/internal/classdb"
	"SceneScript/internal/scene"
	"SceneScript/internal/scriptgen/app"
	"SceneScript/internal/scriptgen/domain"
	"SceneScript/internal/scriptgen/infra/luafmt"
)

const doc = `{
  "Children": [
    {"ClassName": "Workspace", "Children": [
      {"ClassName": "Model", "Name": "Tower", "Properties": {"PrimaryPart": {"Ref": "base"}}, "Children": [
        {"ClassName": "Part", "Name": "Base", "Id": "base",
         "Properties": {"Anchored": true, "Size": {"Vector3": [8, 1, 8]}, "Position": {"Vector3": [0, 5, 0]}}},
        {"ClassName": "Part", "Name": "Top", "Properties": {"Material": {"Enum": "Material.Neon"}}},
        {"ClassName": "ObjectValue", "Name": "Spawn", "Properties": {"Value": {"Ref": "spawn"}}}
      ]},
      {"ClassName": "Part", "Name": "Spawn Location", "Id": "spawn"}
    ]}
  ]
}`

func TestLoader_端到端生成平铺脚本(t *testing.T) {
	db, err := classdb.LoadEmbedded()
	require.NoError(t, err)
	host, root, err := NewLoader(db).Load(context.Background(), []byte(doc), "Workspace.Tower")
	require.NoError(t, err)

	ser := app.NewSerializer(app.NewPropertyCache(db, nil), luafmt.New(), nil)
	res, err := ser.Serialize(context.Background(), host, root, domain.Options{Verbose: true, Parent: true})
	require.NoError(t, err)

	src := res.Container.Source
	assert.True(t, strings.HasPrefix(src, "local Tower = Instance.new(\"Model\")\nTower.Name = \"Tower\"\n"), src)
	assert.Contains(t, src, "Base.Anchored = true\n")
	assert.Contains(t, src, "Base.Size = Vector3.new(8, 1, 8)\n")
	// 文档里的 Position 写进了 CFrame，脚本只输出 CFrame。
	assert.Contains(t, src, "Base.CFrame = CFrame.new(0, 5, 0)\n")
	assert.NotContains(t, src, "Base.Position")
	assert.Contains(t, src, "Top.Material = Enum.Material.Neon\n")
	assert.Contains(t, src, "Spawn.Value = workspace[\"Spawn Location\"]\n")
	assert.True(t, strings.HasSuffix(src, "Tower.PrimaryPart = Base\nTower.Parent = workspace\n"), src)
	assert.Empty(t, res.Diagnostics)
}

func TestHost_Parent无父节点返回nil接口(t *testing.T) {
	db, err := classdb.LoadEmbedded()
	require.NoError(t, err)
	sh, err := scene.NewHost(db)
	require.NoError(t, err)
	h := New(sh)

	p, err := h.New("Part")
	require.NoError(t, err)
	assert.True(t, h.Parent(p) == nil)
	assert.True(t, h.Parent(sh.Root()) == nil)

	_, err = h.New("Workspace")
	assert.Error(t, err)
}

func TestLoader_根路径不存在(t *testing.T) {
	db, err := classdb.LoadEmbedded()
	require.NoError(t, err)
	_, _, err = NewLoader(db).Load(context.Background(), []byte(doc), "Workspace.Nope")
	assert.Error(t, err)
}
