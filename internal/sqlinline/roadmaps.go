package sqlinline

const QInsertRoadmap = `--sql 2a4106ce-8e77-4836-bff3-4f35f396e0ad
insert into roadmaps (user_id, target_role)
values ($1::uuid, $2)
returning id, generated_at, version;
`

const QInsertNode = `--sql c6cae202-f6f6-4cfc-aaa1-2e223ce3b862
insert into nodes (roadmap_id, title, details, resources, position)
values ($1::uuid, $2, $3, $4, $5)
returning id;
`

const QInsertNodeDependency = `--sql c5ec5b09-ccfa-4b1b-a53c-2ef1ee0abcce
insert into node_dependencies (node_id, dependency_id)
values ($1::uuid, $2::uuid);
`

const QSelectRoadmapByUser = `--sql 2dede2c9-73c8-48c8-bf81-103be63c6ea7
select id, target_role, generated_at, version
from roadmaps
where user_id = $1::uuid
limit 1;
`

const QSelectNodesByRoadmap = `--sql 6fc64dcb-2854-4ce4-b705-708ef4e4d12d
select id, title, details, resources, position
from nodes
where roadmap_id = $1::uuid
order by position, id;
`

const QSelectDependenciesByRoadmap = `--sql 1b087305-9c4a-4344-aa3f-172ef718b32d
select nd.node_id, nd.dependency_id
from node_dependencies nd
join nodes n on n.id = nd.node_id
where n.roadmap_id = $1::uuid;
`

const QSelectNodeForUser = `--sql b7783cb4-3a55-4056-8723-80b24ebc6ce4
select n.id
from nodes n
join roadmaps r on r.id = n.roadmap_id
where n.id = $1::uuid
  and r.user_id = $2::uuid
limit 1;
`
